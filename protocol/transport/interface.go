package transport

import (
	"shelfd/protocol/common"
)

// HandleFunc processes one request line from one connection and returns the
// text to send back. Implementations must return a response for every input;
// the transport never drops a request silently.
type HandleFunc func(connID, remoteAddr, line string) string

// CloseFunc is invoked once when a connection disconnects, after its last
// request has been answered.
type CloseFunc func(connID, remoteAddr string)

// IServerTransport is the interface every server transport implements.
type IServerTransport interface {
	// RegisterHandler registers the request handler. Must be called before Listen.
	RegisterHandler(handler HandleFunc)

	// RegisterCloseHandler registers the disconnect handler (optional).
	RegisterCloseHandler(handler CloseFunc)

	// Listen starts accepting connections and blocks until a fatal listener error.
	Listen(config common.ServerConfig) error
}
