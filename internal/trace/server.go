package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
)

// DefaultPort is the default debug server port
const DefaultPort = 9876

// Server serves the Recorder's spans over HTTP for debugging layouts.
type Server struct {
	recorder *Recorder
	server   *http.Server
	port     int
}

// snapshot is the GET /frames response body.
type snapshot struct {
	Spans []Span           `json:"spans"`
	Stats map[string]Stats `json:"stats"`
}

// NewServer creates a debug server.
// Reads port from PANELDOCK_TRACE_PORT env var, defaults to 9876
func NewServer(recorder *Recorder) *Server {
	port := DefaultPort
	if portStr := os.Getenv("PANELDOCK_TRACE_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil && p > 0 && p < 65536 {
			port = p
		}
	}

	s := &Server{
		recorder: recorder,
		port:     port,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.handleFrames)

	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}

	return s
}

// Start begins listening (non-blocking)
// Returns immediately, server runs in background goroutine
func (s *Server) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Trace server error: %v\n", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Port returns the port the server is listening on
func (s *Server) Port() int {
	return s.port
}

// handleFrames handles GET /frames requests
func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body := snapshot{
		Spans: s.recorder.Recent(),
		Stats: s.recorder.AllStats(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
