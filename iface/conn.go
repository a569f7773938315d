package iface

// Conn abstracts a single, feature-minimal connection to the server.
type Conn interface {
	Executor

	// Close the connection to the remote server.
	Close() error

	// Send writes a command to the connection's output buffer without
	// waiting for its reply. It is used to stream the body of a
	// MULTI/EXEC block.
	Send(command string, args ...interface{}) error
}
