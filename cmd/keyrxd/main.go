// Command keyrxd is the keyrx remapping daemon: it loads a TOML config,
// attaches to every matching keyboard, and runs the processing core
// against each device's event stream.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/keyrx/keyrx/internal/configdoc"
	"github.com/keyrx/keyrx/internal/diag"
	"github.com/keyrx/keyrx/internal/processor"
	"github.com/keyrx/keyrx/internal/rule"
)

func main() {
	entrypoint(realMain)
}

// realMain is wrapped by entrypoint so that on darwin/windows it runs
// on the OS main thread, which the pause-key hotkey registration
// requires there.
func realMain() {
	configPath := flag.String("config", configdoc.DefaultPath(), "path to the keyrx TOML config")
	metricsAddr := flag.String("metrics-addr", "127.0.0.1:7878", "address for the diagnostics HTTP server")
	pauseKey := flag.String("pause-key", "", "evdev key name that toggles pause while held (e.g. KEY_SCROLLLOCK), empty disables")
	registryCapacity := flag.Int("taphold-capacity", 0, "per-device pending tap-hold registry capacity, 0 uses the default")
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	flag.Parse()

	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(os.Stderr, "", 0)
	}

	doc, err := configdoc.Load(*configPath)
	if err != nil {
		log.Fatalf("load config %s: %v", *configPath, err)
	}

	devices, err := configdoc.Compile(doc)
	if err != nil {
		log.Fatalf("compile config %s: %v", *configPath, err)
	}
	dbg.Printf("loaded %d device config(s) from %s", len(devices), *configPath)

	counts := diag.NewRegistry()

	daemon, err := newDaemon(devices, *registryCapacity, *pauseKey, counts, dbg)
	if err != nil {
		log.Fatalf("start daemon: %v", err)
	}

	diagServer := diag.New(*metricsAddr, dbg, counts, daemon.deviceInfo)
	if err := diagServer.Start(); err != nil {
		log.Fatalf("start diagnostics server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	daemon.run(ctx, &wg)

	<-sigCh
	dbg.Printf("shutting down")
	cancel()
	wg.Wait()
	_ = diagServer.Stop()
}

// deviceRuntime bundles one attached device's live processor with the
// info the diagnostics server reports for it.
type deviceRuntime struct {
	name    string
	pattern string
	proc    *processor.Processor
}

type daemon struct {
	runtimes []*deviceRuntime
	pauseKey string
	logger   *log.Logger
	mu       sync.Mutex
}

func newDaemon(devices []rule.DeviceConfig, registryCapacity int, pauseKey string, counts *diag.Registry, logger *log.Logger) (*daemon, error) {
	d := &daemon{logger: logger, pauseKey: pauseKey}
	for _, dc := range devices {
		lookup := rule.NewLookup(dc)
		proc := processor.New(lookup, registryCapacity)
		d.runtimes = append(d.runtimes, &deviceRuntime{name: dc.Pattern, pattern: dc.Pattern, proc: proc})
		counts.For(dc.Pattern)
	}
	return d, nil
}

func (d *daemon) deviceInfo() []diag.DeviceInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]diag.DeviceInfo, 0, len(d.runtimes))
	for _, r := range d.runtimes {
		snap := r.proc.Snapshot()
		pending := make([]string, len(snap.PendingKeys))
		for i, k := range snap.PendingKeys {
			pending[i] = k.String()
		}
		out = append(out, diag.DeviceInfo{
			Handle:          r.name,
			Pattern:         r.pattern,
			Paused:          r.proc.IsPaused(),
			ModifiersActive: snap.ModifiersActive,
			LocksActive:     snap.LocksActive,
			PendingKeys:     pending,
		})
	}
	return out
}

// run attaches platform I/O to every device runtime and starts one
// goroutine per device. On non-Linux builds this is a no-op: the
// platform adapter is unimplemented, so keyrxd can still load and
// validate a config but cannot drive real hardware. See run_linux.go
// for the Linux implementation.
func (d *daemon) run(ctx context.Context, wg *sync.WaitGroup) {
	d.runPlatform(ctx, wg)
}

