package base

import (
	"fmt"
	"net"
	"time"

	"shelfd/protocol/common"
)

// Dial opens a client connection according to the client configuration.
func Dial(config common.ClientConfig) (net.Conn, error) {
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	switch config.Transport {
	case "tcp", "unix":
		return net.DialTimeout(config.Transport, config.Endpoint, timeout)
	default:
		return nil, fmt.Errorf("invalid transport %s", config.Transport)
	}
}
