package diag

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// DeviceInfo is one attached device's identity plus a point-in-time
// snapshot of its live runtime state, reported alongside its counters.
// The snapshot fields are sourced from processor.Processor.Snapshot,
// never read directly off the device's live core state, since that
// state belongs exclusively to the device's own goroutine.
type DeviceInfo struct {
	Handle          string   `json:"handle"`
	Pattern         string   `json:"pattern"`
	Paused          bool     `json:"paused"`
	PendingKeys     []string `json:"pending_keys"`
	ModifiersActive []uint8  `json:"modifiers_active"`
	LocksActive     []uint8  `json:"locks_active"`
}

// Server exposes a device registry and its counters over HTTP, modeled
// on the teacher's internal/server lifecycle shape: a struct holding a
// *log.Logger and an http.Server, started and stopped explicitly by the
// caller rather than managing its own goroutine lifetime implicitly.
type Server struct {
	Addr    string
	Logger  *log.Logger
	Devices func() []DeviceInfo
	Counts  *Registry

	srv *http.Server
}

// New builds a Server listening on addr. devices is called fresh on
// every /devices request so the response always reflects live state.
func New(addr string, logger *log.Logger, counts *Registry, devices func() []DeviceInfo) *Server {
	return &Server{Addr: addr, Logger: logger, Devices: devices, Counts: counts}
}

// Start begins serving in the background and returns immediately. Call
// Stop to shut it down.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/devices", s.handleDevices)
	mux.HandleFunc("/counters", s.handleCounters)

	s.srv = &http.Server{Addr: s.Addr, Handler: mux}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("diag: listen on %s: %w", s.Addr, err)
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Printf("diag: server error: %v", err)
		}
	}()
	s.Logger.Printf("diag: listening on %s", s.Addr)
	return nil
}

// Stop shuts the server down, giving in-flight requests up to 5 seconds
// to complete.
func (s *Server) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Devices()); err != nil {
		s.Logger.Printf("diag: encode /devices response: %v", err)
	}
}

func (s *Server) handleCounters(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Counts.Snapshot()); err != nil {
		s.Logger.Printf("diag: encode /counters response: %v", err)
	}
}
