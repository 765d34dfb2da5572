// Package transport defines the server transport abstraction of the line
// protocol: newline-delimited UTF-8 text, one command or answer per line,
// strictly request/response. Concrete transports (tcp, unix) plug a connector
// into the shared base implementation.
package transport
