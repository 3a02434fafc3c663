package opdesc

// Description is a named, ordered set of command descriptors, typically
// loaded from a service description file or collected by the source scanner.
type Description struct {
	name     string
	order    []string
	commands map[string]*Command
}

// NewDescription creates a description holding the given commands, keyed and
// ordered by command name.
func NewDescription(name string, commands ...*Command) *Description {
	d := &Description{
		name:     name,
		commands: make(map[string]*Command, len(commands)),
	}
	for _, cmd := range commands {
		d.Add(cmd)
	}
	return d
}

// Name returns the description name
func (d *Description) Name() string { return d.name }

// Add inserts a command. A command with an existing name replaces the old
// entry but keeps its position.
func (d *Description) Add(cmd *Command) {
	if cmd == nil || cmd.Name() == "" {
		return
	}
	if _, exists := d.commands[cmd.Name()]; !exists {
		d.order = append(d.order, cmd.Name())
	}
	d.commands[cmd.Name()] = cmd
}

// Command returns the named command, or nil when absent
func (d *Description) Command(name string) *Command {
	return d.commands[name]
}

// Names returns command names in insertion order
func (d *Description) Names() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Commands returns the commands in insertion order
func (d *Description) Commands() []*Command {
	commands := make([]*Command, 0, len(d.order))
	for _, name := range d.order {
		commands = append(commands, d.commands[name])
	}
	return commands
}

// Len returns the number of commands
func (d *Description) Len() int { return len(d.order) }

// Merge adds every command from other, replacing same-named entries
func (d *Description) Merge(other *Description) {
	if other == nil {
		return
	}
	for _, cmd := range other.Commands() {
		d.Add(cmd)
	}
}
