// Package commands holds the command modules compiled into the binary.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zrma/trollsmile/command"
)

var modules map[string]command.Module

func register(name string, m command.Module) error {
	if modules == nil {
		modules = make(map[string]command.Module)
	}

	if _, ok := modules[name]; ok {
		return fmt.Errorf("already registered command %s", name)
	}

	modules[name] = m
	return nil
}

// Modules returns a copy of the built-in modules keyed by command name.
func Modules() map[string]command.Module {
	out := make(map[string]command.Module, len(modules))
	for name, m := range modules {
		out[name] = m
	}
	return out
}

var _ = register("echo", command.Module{
	Run: func(_ context.Context, _ *command.Bot, _ *command.Message, args []string) (string, error) {
		return strings.Join(args, " "), nil
	},
	Aliases: []string{"say"},
	Help:    "Repeats whatever follows it",
})

var _ = register("ping", command.Module{
	Run: func(context.Context, *command.Bot, *command.Message, []string) (string, error) {
		return "pong", nil
	},
	Help: "Checks that the bot is listening",
})

var _ = register("help", command.Module{
	Run:     help,
	Aliases: []string{"commands"},
	Help:    "Lists commands, or describes the one named",
})

var _ = register("aliases", command.Module{
	Run:  aliases,
	Help: "Shows the other names a command answers to",
})

func help(_ context.Context, bot *command.Bot, _ *command.Message, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		d, err := lookup(bot, args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%s: %s", bot.Prefix, d.Name, d.Help), nil
	}

	var b strings.Builder
	for i, d := range bot.Registry.List() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s%s - %s", bot.Prefix, d.Name, d.Help)
	}
	return b.String(), nil
}

func aliases(_ context.Context, bot *command.Bot, _ *command.Message, args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", errors.New("usage: aliases <command>")
	}
	d, err := lookup(bot, args[0])
	if err != nil {
		return "", err
	}
	if len(d.Aliases) == 0 {
		return fmt.Sprintf("%s has no aliases", d.Name), nil
	}
	return fmt.Sprintf("%s: %s", d.Name, strings.Join(d.Aliases, ", ")), nil
}

func lookup(bot *command.Bot, name string) (command.Descriptor, error) {
	d, ok := bot.Registry.Resolve(strings.TrimPrefix(name, bot.Prefix))
	if !ok {
		return command.Descriptor{}, fmt.Errorf("no command named %q", name)
	}
	return d, nil
}
