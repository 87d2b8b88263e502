package loader

import (
	"context"
	"fmt"
	"plugin"

	"github.com/zrma/trollsmile/command"
)

// OpenPlugin opens a Go plugin built with -buildmode=plugin. The plugin must
// export Run and may export Aliases ([]string) and Help (string).
func OpenPlugin(path string) (command.Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return command.Module{}, err
	}
	return moduleFromSymbols(p.Lookup)
}

func moduleFromSymbols(lookup func(string) (plugin.Symbol, error)) (command.Module, error) {
	sym, err := lookup("Run")
	if err != nil {
		return command.Module{}, err
	}

	var m command.Module
	switch run := sym.(type) {
	case func(context.Context, *command.Bot, *command.Message, []string) (string, error):
		m.Run = run
	case *func(context.Context, *command.Bot, *command.Message, []string) (string, error):
		m.Run = *run
	case *command.HandlerFunc:
		m.Run = *run
	default:
		return command.Module{}, fmt.Errorf("Run has type %T", sym)
	}

	if sym, err := lookup("Aliases"); err == nil {
		aliases, ok := sym.(*[]string)
		if !ok {
			return command.Module{}, fmt.Errorf("Aliases has type %T, want []string", sym)
		}
		m.Aliases = *aliases
	}

	if sym, err := lookup("Help"); err == nil {
		help, ok := sym.(*string)
		if !ok {
			return command.Module{}, fmt.Errorf("Help has type %T, want string", sym)
		}
		m.Help = *help
	}

	return m, nil
}
