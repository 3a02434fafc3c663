// Package opdesc describes remote-service commands declaratively: an API
// operation's name, HTTP method, URI template, handler class, and a typed,
// ordered set of parameters with validation rules. Descriptors are built from
// explicit configuration records or derived from @opdesc annotations in a
// handler's documentation, and validate caller-supplied configuration in
// place before a request is built.
package opdesc

// DefaultClass is the handler class assigned to commands constructed without
// an explicit one.
const DefaultClass = "github.com/vexley/opdesc/command.Closure"

// ParamSource is satisfied by both ParamConfig and *Param, so command
// construction accepts raw records and already-built descriptors
// interchangeably. Normalization is idempotent: a raw record is wrapped into
// a *Param, a built *Param is kept as-is.
type ParamSource interface {
	commandParam() *Param
}

// CommandConfig is the configuration record a Command is constructed from
// and exported back to. Missing fields default to the empty string, except
// Class which defaults to DefaultClass.
type CommandConfig struct {
	Name   string
	Doc    string
	Method string
	URI    string
	Class  string
	Params []ParamSource
}

// Command describes one remote operation. It is immutable after
// construction and safe to share read-only across validation calls.
type Command struct {
	name   string
	doc    string
	method string
	uri    string
	class  string
	order  []string
	params map[string]*Param
}

// NewCommand builds a command descriptor from a configuration record.
// Parameter names are unique within a command: a later entry with the same
// name replaces the earlier value but keeps its position.
func NewCommand(cfg CommandConfig) *Command {
	class := cfg.Class
	if class == "" {
		class = DefaultClass
	}

	cmd := &Command{
		name:   cfg.Name,
		doc:    cfg.Doc,
		method: cfg.Method,
		uri:    cfg.URI,
		class:  class,
		params: make(map[string]*Param, len(cfg.Params)),
	}

	for _, source := range cfg.Params {
		if source == nil {
			continue
		}
		param := source.commandParam()
		if param.Name() == "" {
			continue
		}
		if _, exists := cmd.params[param.Name()]; !exists {
			cmd.order = append(cmd.order, param.Name())
		}
		cmd.params[param.Name()] = param
	}

	return cmd
}

// Name returns the command name
func (c *Command) Name() string { return c.name }

// Doc returns the command's free-text documentation
func (c *Command) Doc() string { return c.doc }

// Method returns the HTTP method token
func (c *Command) Method() string { return c.method }

// URI returns the URI template
func (c *Command) URI() string { return c.uri }

// Class returns the handler class identifier
func (c *Command) Class() string { return c.class }

// Param returns the named parameter descriptor, or nil when absent
func (c *Command) Param(name string) *Param {
	return c.params[name]
}

// ParamNames returns parameter names in insertion order
func (c *Command) ParamNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Params returns the parameter descriptors in insertion order
func (c *Command) Params() []*Param {
	params := make([]*Param, 0, len(c.order))
	for _, name := range c.order {
		params = append(params, c.params[name])
	}
	return params
}

// Len returns the number of parameters
func (c *Command) Len() int { return len(c.order) }

// Config exports the descriptor as a configuration record. Reconstructing a
// command from the exported record yields an equal descriptor.
func (c *Command) Config() CommandConfig {
	cfg := CommandConfig{
		Name:   c.name,
		Doc:    c.doc,
		Method: c.method,
		URI:    c.uri,
		Class:  c.class,
	}
	for _, name := range c.order {
		cfg.Params = append(cfg.Params, c.params[name].Config())
	}
	return cfg
}
