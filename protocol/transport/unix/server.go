package unix

import (
	"fmt"
	"net"
	"os"

	"shelfd/protocol/common"
	"shelfd/protocol/transport"
	"shelfd/protocol/transport/base"
)

// serverConnector implements the IServerConnector interface for unix domain sockets
type serverConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector)
// --------------------------------------------------------------------------

func (c *serverConnector) GetName() string {
	return "unix"
}

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	// Remove a stale socket file left over from a previous run
	if _, err := os.Stat(config.Endpoint); err == nil {
		if err := os.Remove(config.Endpoint); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket file: %v", err)
		}
	}

	listener, err := net.Listen("unix", config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket: %v", err)
	}

	return listener, nil
}

// UpgradeConnection is a no-op for unix domain sockets.
func (c *serverConnector) UpgradeConnection(conn net.Conn, config common.ServerConfig) error {
	return nil
}

// --------------------------------------------------------------------------
// Server Transport Factory Method
// --------------------------------------------------------------------------

// NewUnixServerTransport creates a new unix domain socket server transport
func NewUnixServerTransport() transport.IServerTransport {
	return base.NewBaseServerTransport(&serverConnector{})
}
