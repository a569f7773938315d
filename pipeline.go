package tairclient

import "github.com/631086083/tairclient/iface"

type (
	// Pipeline wraps an ordered sequence of commands to be processed
	// with a single request/response exchange. It satisfies iface.Queue,
	// so the exhash and exstring pipelines can attach commands to it.
	// A pipeline is not safe for concurrent use.
	Pipeline = iface.Pipeline

	pipeline struct {
		client   *client
		commands []commandPair
	}

	commandPair struct {
		command string
		args    []interface{}
	}
)

func newPipeline(client *client) Pipeline {
	return &pipeline{
		client:   client,
		commands: []commandPair{},
	}
}

// Add will attach a command to this pipeline. This command is
// not sent to the remote server until Run is invoked.
func (p *pipeline) Add(command string, args ...interface{}) {
	p.commands = append(p.commands, commandPair{
		command: command,
		args:    args,
	})
}

func (p *pipeline) Len() int {
	return len(p.commands)
}

// Run will send all commands attached to this pipeline in a
// single request and return a slice of the results of each
// command. Running an empty pipeline does not contact the server.
func (p *pipeline) Run() ([]interface{}, error) {
	if len(p.commands) == 0 {
		return []interface{}{}, nil
	}

	return p.client.runPipeline(p.commands)
}
