package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/discovery"
	"github.com/mwhitley/upnpscan/internal/logging"
	"github.com/mwhitley/upnpscan/internal/ssdp"
)

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	LogLevel string
}

// Server exposes discovery over HTTP: GET /api/devices runs a scan and
// returns the resolved devices; GET /ws streams one event per resolved
// device while scans run.
type Server struct {
	config     *Config
	client     *discovery.Client
	httpServer *http.Server

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

// New creates a new Server instance
func New(config *Config, client *discovery.Client) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if client == nil {
		client = discovery.NewClient()
	}

	s := &Server{
		config:      config,
		client:      client,
		subscribers: make(map[*subscriber]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/devices", s.handleDevices)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	logging.Info("Starting upnpscan server",
		zap.String("addr", s.httpServer.Addr),
		zap.String("log_level", s.config.LogLevel),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.closeSubscribers()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	logging.Sync()
	return err
}

// devicesResponse is the JSON body of GET /api/devices
type devicesResponse struct {
	SearchTarget string      `json:"search_target"`
	Count        int         `json:"count"`
	Devices      interface{} `json:"devices"`
}

// handleDevices runs one scan and returns the resolved devices. Each
// device is also pushed to websocket subscribers as it resolves.
func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	searchTarget := r.URL.Query().Get("st")
	if searchTarget == "" {
		searchTarget = ssdp.AllDevices
	}

	logging.Info("scan requested",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("search_target", searchTarget),
	)

	s.broadcast(event{Type: "scan_started", SearchTarget: searchTarget})

	notifications := s.client.SearchDevices(searchTarget)
	devices := s.client.Fetcher.FetchAll(notifications)
	for _, d := range devices {
		s.broadcast(event{Type: "device", SearchTarget: searchTarget, Device: d})
	}

	s.broadcast(event{Type: "scan_complete", SearchTarget: searchTarget, Count: len(devices)})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(devicesResponse{
		SearchTarget: searchTarget,
		Count:        len(devices),
		Devices:      devices,
	}); err != nil {
		logging.Error("failed to encode devices response", zap.Error(err))
	}
}

// SubscriberCount returns the number of connected websocket clients
func (s *Server) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}
