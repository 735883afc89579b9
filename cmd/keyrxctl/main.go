// Command keyrxctl is the keyrx operator CLI: it validates config files
// and launches a live status inspector against a running daemon.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keyrx/keyrx/internal/configdoc"
	"github.com/keyrx/keyrx/internal/rule"
	"github.com/keyrx/keyrx/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "status":
		runStatus(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: keyrxctl <status|validate> [flags]")
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	addr := fs.String("addr", "http://127.0.0.1:7878", "address of the running daemon's diagnostics server")
	_ = fs.Parse(args)

	p := tea.NewProgram(tui.NewModel(*addr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "keyrxctl status: %v\n", err)
		os.Exit(1)
	}
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", configdoc.DefaultPath(), "path to the keyrx TOML config")
	_ = fs.Parse(args)

	doc, err := configdoc.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	devices, err := configdoc.Compile(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s is invalid:\n%v\n", *configPath, err)
		os.Exit(1)
	}

	fmt.Printf("%s is valid: %d device(s), %d total mapping(s)\n", *configPath, len(devices), totalMappings(devices))
}

func totalMappings(devices []rule.DeviceConfig) int {
	total := 0
	for _, d := range devices {
		total += len(d.Mappings)
	}
	return total
}
