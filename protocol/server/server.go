package server

import (
	"net/http"
	"os"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"shelfd/lib/audit"
	"shelfd/lib/library"
	"shelfd/protocol/common"
	"shelfd/protocol/engine"
	"shelfd/protocol/transport"
)

var Logger = common.GetLogger("server")

var (
	requestsTotal    = metrics.NewCounter("shelfd_requests_total")
	disconnectsTotal = metrics.NewCounter("shelfd_disconnects_total")
	responseTimeMs   = metrics.NewHistogram("shelfd_response_ms")
)

// LibraryServer wires the protocol engine, the session table and the audit
// sink into a server transport.
type LibraryServer struct {
	config    common.ServerConfig
	transport transport.IServerTransport
	engine    *engine.Engine
	sessions  *engine.SessionTable
	audit     *audit.Logger
	hostname  string
}

// NewLibraryServer creates a library server over the given transport.
//
// Usage:
//
//	s := server.NewLibraryServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		eng, sessions, auditLogger,
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewLibraryServer(
	config common.ServerConfig,
	serverTransport transport.IServerTransport,
	eng *engine.Engine,
	sessions *engine.SessionTable,
	auditLogger *audit.Logger,
) *LibraryServer {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	Logger.Infof("Created library server")
	Logger.Infof(config.String())

	return &LibraryServer{
		config:    config,
		transport: serverTransport,
		engine:    eng,
		sessions:  sessions,
		audit:     auditLogger,
		hostname:  hostname,
	}
}

// Serve registers the transport handlers and blocks serving connections.
func (s *LibraryServer) Serve() error {
	metrics.NewGauge("shelfd_active_sessions", func() float64 {
		return float64(s.sessions.Len())
	})

	s.transport.RegisterHandler(func(connID, remoteAddr, line string) string {
		requestsTotal.Inc()

		// Fire-and-forget: the handler never waits on the audit store.
		s.audit.LogAsync(library.AuditEntry{
			ClientIP:    remoteAddr,
			MachineName: s.hostname,
			Action:      "Request",
			Description: line,
		})

		start := time.Now()
		resp := s.engine.Handle(connID, line)
		responseTimeMs.Update(float64(time.Since(start).Milliseconds()))

		return resp
	})

	s.transport.RegisterCloseHandler(func(connID, remoteAddr string) {
		disconnectsTotal.Inc()
		s.audit.LogAsync(library.AuditEntry{
			ClientIP:    remoteAddr,
			MachineName: s.hostname,
			Action:      "Client Disconnected",
			Description: "Client connection closed",
		})
		s.sessions.Drop(connID)
	})

	if s.config.MetricsEndpoint != "" {
		go s.serveMetrics()
	}

	return s.transport.Listen(s.config)
}

// serveMetrics exposes the process metrics in Prometheus text format.
func (s *LibraryServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	Logger.Infof("Serving metrics on http://%s/metrics", s.config.MetricsEndpoint)
	if err := http.ListenAndServe(s.config.MetricsEndpoint, mux); err != nil {
		Logger.Errorf("Metrics endpoint failed: %v", err)
	}
}

// Shutdown drains the audit queue. The transport keeps no state worth
// flushing; in-flight connections are simply dropped by process exit.
func (s *LibraryServer) Shutdown() {
	s.audit.Close()
}
