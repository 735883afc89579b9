//go:build !linux

package main

import (
	"context"
	"sync"
)

// runPlatform is a no-op outside Linux: there is no platform I/O
// adapter for this OS yet, so keyrxd can still load and validate a
// config but cannot attach to real hardware.
func (d *daemon) runPlatform(ctx context.Context, wg *sync.WaitGroup) {
	d.logger.Printf("no platform I/O adapter available on this OS; running with no attached devices")
}
