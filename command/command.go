package command

import "context"

// DefaultHelp is used for modules that do not describe themselves.
const DefaultHelp = "A command without a description"

type HandlerFunc func(ctx context.Context, bot *Bot, msg *Message, args []string) (string, error)

// Module is what a command source provides. The name comes from where it was found.
type Module struct {
	Run     HandlerFunc
	Aliases []string
	Help    string
}

type Descriptor struct {
	Name    string
	Handler HandlerFunc
	Aliases []string
	Help    string
}

func NewDescriptor(name string, m Module) Descriptor {
	help := m.Help
	if help == "" {
		help = DefaultHelp
	}
	return Descriptor{
		Name:    name,
		Handler: m.Run,
		Aliases: append([]string(nil), m.Aliases...),
		Help:    help,
	}
}

func (d Descriptor) clone() Descriptor {
	d.Aliases = append([]string(nil), d.Aliases...)
	return d
}
