package iface

// Pipeline wraps an ordered sequence of commands to be processed
// with a single request/response exchange.
type Pipeline interface {
	Queue

	// Len returns the number of commands attached so far.
	Len() int

	// Run will send all commands attached to this pipeline in a
	// single request and return a slice of the results of each
	// command.
	Run() ([]interface{}, error)
}
