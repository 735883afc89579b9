//go:build linux

package control

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// evdevListener watches one key on an already-open evdev device for
// press/release, reusing the teacher's device-reading approach from the
// original hotkey package.
type evdevListener struct {
	dev     *evdev.InputDevice
	keyCode evdev.EvCode
	keyName string
	mu      sync.Mutex
	closed  bool
}

// NewEvdevListener returns a Listener that watches keyCode on dev. The
// caller keeps ownership of dev; Stop only stops reading, it does not
// close the device, since the same evdev handle may also be feeding an
// evdevio.Source.
func NewEvdevListener(dev *evdev.InputDevice, keyCode evdev.EvCode, keyName string) Listener {
	return &evdevListener{dev: dev, keyCode: keyCode, keyName: keyName}
}

func (l *evdevListener) Start(ctx context.Context, onDown func(), onUp func()) error {
	errCh := make(chan error, 1)

	go func() {
		for {
			ev, err := l.dev.ReadOne()
			if err != nil {
				l.mu.Lock()
				closed := l.closed
				l.mu.Unlock()
				if closed || os.IsNotExist(err) || strings.Contains(err.Error(), "file already closed") {
					errCh <- nil
					return
				}
				errCh <- fmt.Errorf("control: read event: %w", err)
				return
			}

			if ev.Type != evdev.EV_KEY || ev.Code != l.keyCode {
				continue
			}
			switch ev.Value {
			case 1:
				if onDown != nil {
					onDown()
				}
			case 0:
				if onUp != nil {
					onUp()
				}
			}
		}
	}()

	select {
	case <-ctx.Done():
		l.Stop()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (l *evdevListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *evdevListener) KeyName() string { return l.keyName }
