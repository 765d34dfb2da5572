package base

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shelfd/protocol/common"
	"shelfd/protocol/transport"
)

var Logger = common.GetLogger("transport")

const defaultBufferSize = 1024

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// UpgradeConnection applies transport-specific tuning to a new connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core line-server functionality shared by all
// stream transports: accept loop, one goroutine per connection, fixed-size
// read buffer per request.
type serverTransport struct {
	connector    IServerConnector
	handler      transport.HandleFunc
	closeHandler transport.CloseFunc
	config       common.ServerConfig
	listener     net.Listener
	bufferPool   *sync.Pool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport around the given
// connector.
func NewBaseServerTransport(connector IServerConnector) transport.IServerTransport {
	return &serverTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.HandleFunc) {
	t.handler = handler
}

func (t *serverTransport) RegisterCloseHandler(handler transport.CloseFunc) {
	t.closeHandler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	bufferSize := config.Socket.ReadBufferSize
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	t.bufferPool = &sync.Pool{
		New: func() interface{} {
			return make([]byte, bufferSize)
		},
	}

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}
	t.listener = listener

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), config.Endpoint)

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Warningf("Failed to tune connection: %v", err)
		}

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection runs the request/response loop for one connection. Each
// connection gets a fresh identifier that keys its protocol session.
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()
	remoteAddr := "unknown"
	if addr := conn.RemoteAddr(); addr != nil {
		remoteAddr = addr.String()
	}

	Logger.Debugf("Connection %s opened from %s", connID, remoteAddr)

	// Timeout in seconds
	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	for {
		line, err := t.readRequest(conn, timeout)

		// Case EOF: Connection closed by client
		if err == io.EOF {
			Logger.Infof("Connection closed by client")
			break
		}

		// Case error: log and close connection
		if err != nil {
			Logger.Errorf("Error reading request: %v", err)
			break
		}

		resp := t.handler(connID, remoteAddr, line)

		if err := t.writeResponse(conn, resp, timeout); err != nil {
			Logger.Errorf("Failed to write response: %v", err)
			break
		}
	}

	if t.closeHandler != nil {
		t.closeHandler(connID, remoteAddr)
	}
}

// readRequest reads one request into a pooled fixed-size buffer. A request
// longer than the buffer is truncated - legacy behavior of the original
// fixed-size read, kept as part of the wire contract.
func (t *serverTransport) readRequest(conn net.Conn, timeout time.Duration) (string, error) {
	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return "", fmt.Errorf("failed to set read deadline: %v", err)
		}
	}

	buf := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(buf)

	n, err := conn.Read(buf)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(buf[:n]), "\r\n"), nil
}

// writeResponse writes the response text followed by a newline.
func (t *serverTransport) writeResponse(conn net.Conn, resp string, timeout time.Duration) error {
	if timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %v", err)
		}
	}

	_, err := conn.Write([]byte(resp + "\n"))
	return err
}
