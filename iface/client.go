package iface

// Client is a goroutine-safe, pooled connection to a Tair (or any
// Redis-compatible) server.
type Client interface {
	Executor

	// Close will close all open connections to the remote server,
	// including the connections held by the read replica client.
	Close()

	// ReadReplica returns a client that points to the set of configured
	// read replicas. If no read replicas are configured, this returns
	// the current client. The returned client must not be closed on its
	// own; closing the source client closes it as well.
	ReadReplica() Client

	// Pipeline returns a builder object to which commands can be attached.
	// Attached commands are wrapped in MULTI/EXEC and sent to the remote
	// server in a single request.
	Pipeline() Pipeline
}
