package iface

// Executor runs a single command on a remote server and returns the
// decoded reply. Integer replies are int64, bulk replies are []byte,
// status replies are string, arrays are []interface{}, and a missing
// value is nil. Server rejections are returned as errors carrying the
// server's message text.
type Executor interface {
	Do(command string, args ...interface{}) (interface{}, error)
}

// Queue collects commands to be sent later as a batch.
type Queue interface {
	Add(command string, args ...interface{})
}
