package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const defaultEndpoint = "/metrics"

// Server exposes a registry over HTTP.
type Server struct {
	server   *http.Server
	listener net.Listener
	log      *logrus.Entry
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Listen binds addr and starts serving the registry in the background.
func Listen(addr string, registry *prometheus.Registry, logger *logrus.Entry) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(defaultEndpoint, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &Server{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: listener,
		log:      logger.WithField("component", "metrics"),
	}

	go func() {
		server.log.Infof("metrics available at http://%s%s", listener.Addr(), defaultEndpoint)
		if err := server.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.log.Errorf("metrics server stopped: %v", err)
		}
	}()

	return server, nil
}

// Addr returns the bound address.
func (server *Server) Addr() string {
	if server == nil {
		return ""
	}
	return server.listener.Addr().String()
}

// Shutdown stops the listener.
func (server *Server) Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.server.Shutdown(ctx)
}
