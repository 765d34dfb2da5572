package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings shared by all stream transports.
type SocketConf struct {
	// WriteBufferSize is the socket write buffer size in bytes (0 = OS default)
	WriteBufferSize int
	// ReadBufferSize is the socket read buffer size in bytes (0 = OS default).
	// It is also the per-request read buffer: a request line longer than this
	// is truncated.
	ReadBufferSize int
}

// TCPConf holds TCP-specific tuning options (ignored by the unix transport).
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ServerConfig holds all configuration parameters for the library server.
type ServerConfig struct {
	// Endpoint is the listen address (host:port for tcp, a path for unix)
	Endpoint string
	// Transport selects the stream transport ("tcp" or "unix")
	Transport string
	// DataDir is the directory holding the JSON collection files
	DataDir string
	// TimeoutSecond is the per-read/write deadline for client connections
	TimeoutSecond int64
	// LoanDays is the loan period stamped onto networked borrows
	LoanDays int
	// MetricsEndpoint optionally exposes Prometheus metrics over HTTP ("" = off)
	MetricsEndpoint string
	// Logging configuration
	LogLevel string

	Socket SocketConf
	TCP    TCPConf
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Server")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Library")
	addField("Data Directory", c.DataDir)
	addField("Loan Period", fmt.Sprintf("%d days", c.LoanDays))

	addSection("Socket")
	addField("Read Buffer", strconv.Itoa(c.Socket.ReadBufferSize))
	addField("Write Buffer", strconv.Itoa(c.Socket.WriteBufferSize))
	if c.Transport == "tcp" {
		addField("TCP NoDelay", fmt.Sprintf("%t", c.TCP.TCPNoDelay))
		addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.TCP.TCPKeepAliveSec))
		addField("TCP Linger", fmt.Sprintf("%d sec", c.TCP.TCPLingerSec))
	}

	addSection("Observability")
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	} else {
		addField("Metrics Endpoint", "disabled")
	}
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the settings of the interactive line client.
type ClientConfig struct {
	Endpoint      string
	Transport     string
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	sb.WriteString("\nCLIENT CONFIGURATION\n")
	sb.WriteString(fmt.Sprintf("  %-22s: %s\n", "Transport", c.Transport))
	sb.WriteString(fmt.Sprintf("  %-22s: %s\n", "Endpoint", c.Endpoint))
	sb.WriteString(fmt.Sprintf("  %-22s: %d sec\n", "Timeout", c.TimeoutSecond))

	return sb.String()
}
