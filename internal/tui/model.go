// Package tui implements keyrxctl's live status inspector: a Bubble
// Tea program that polls a running daemon's diag HTTP endpoints on a
// ticker and renders device and counter state, in the style of the
// teacher's polling-driven status screen.
package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 500 * time.Millisecond

// DeviceInfo mirrors diag.DeviceInfo without importing the diag
// package, the same way the teacher's TUI defines its own message
// types instead of depending on the packages that originate them.
type DeviceInfo struct {
	Handle          string   `json:"handle"`
	Pattern         string   `json:"pattern"`
	Paused          bool     `json:"paused"`
	PendingKeys     []string `json:"pending_keys"`
	ModifiersActive []uint8  `json:"modifiers_active"`
	LocksActive     []uint8  `json:"locks_active"`
}

// Counters mirrors diag.Snapshot.
type Counters struct {
	Events                 uint64 `json:"events"`
	ConstraintViolations   uint64 `json:"constraint_violations"`
	CapacityExceeded       uint64 `json:"capacity_exceeded"`
	PermissiveHoldTriggers uint64 `json:"permissive_hold_triggers"`
	TapCommits             uint64 `json:"tap_commits"`
	HoldCommits            uint64 `json:"hold_commits"`
}

type pollTickMsg struct{}

type pollResultMsg struct {
	devices  []DeviceInfo
	counters map[string]Counters
	err      error
}

// Model is the Bubble Tea model for keyrxctl status.
type Model struct {
	Addr string

	devices  []DeviceInfo
	counters map[string]Counters
	lastErr  error
	quitting bool
}

// NewModel builds a status inspector polling the diag server at addr
// (e.g. "http://127.0.0.1:7878").
func NewModel(addr string) Model {
	return Model{Addr: addr}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(poll(m.Addr), tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

func poll(addr string) tea.Cmd {
	return func() tea.Msg {
		devices, err := fetchDevices(addr)
		if err != nil {
			return pollResultMsg{err: err}
		}
		counters, err := fetchCounters(addr)
		if err != nil {
			return pollResultMsg{err: err}
		}
		return pollResultMsg{devices: devices, counters: counters}
	}
}

func fetchDevices(addr string) ([]DeviceInfo, error) {
	var out []DeviceInfo
	if err := getJSON(addr+"/devices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fetchCounters(addr string) (map[string]Counters, error) {
	out := make(map[string]Counters)
	if err := getJSON(addr+"/counters", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func getJSON(url string, v any) error {
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("tui: get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tui: get %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case pollTickMsg:
		return m, tea.Batch(poll(m.Addr), tick())
	case pollResultMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.devices = msg.devices
		m.counters = msg.counters
	}
	return m, nil
}
