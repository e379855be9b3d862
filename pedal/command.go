package pedal

import "fmt"

// CommandKind tags the two shapes of outbound parameter command
type CommandKind int

const (
	CommandField   CommandKind = iota // named field with a value
	CommandTrigger                    // momentary action, no stored value
)

// Command is one outbound edit. Field commands carry a value and pass
// through the throttler; trigger commands fire immediately and are never
// coalesced.
type Command struct {
	Kind  CommandKind
	Name  string
	Value int // field commands only
}

// FieldCommand builds a field edit
func FieldCommand(name string, value int) Command {
	return Command{Kind: CommandField, Name: name, Value: value}
}

// TriggerCommand builds a momentary trigger
func TriggerCommand(name string) Command {
	return Command{Kind: CommandTrigger, Name: name}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandField:
		return fmt.Sprintf("field %s=%d", c.Name, c.Value)
	case CommandTrigger:
		return fmt.Sprintf("trigger %s", c.Name)
	}
	return fmt.Sprintf("command(%d) %s", c.Kind, c.Name)
}
