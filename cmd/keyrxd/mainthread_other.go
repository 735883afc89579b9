//go:build darwin || windows

package main

import "golang.design/x/mainthread"

// entrypoint runs fn on the OS main thread via golang.design/x/mainthread,
// which golang.design/x/hotkey's Register requires on these platforms —
// the same constraint the teacher's CGo event tap enforced with
// runtime.LockOSThread on darwin.
func entrypoint(fn func()) {
	mainthread.Init(fn)
}
