package loader

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"plugin"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/zrma/trollsmile/command"
)

func reply(text string) command.HandlerFunc {
	return func(context.Context, *command.Bot, *command.Message, []string) (string, error) {
		return text, nil
	}
}

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
	mods   map[string]command.Module
	errs   map[string]error
}

func (f *fakeOpener) Open(p string) (command.Module, error) {
	f.mu.Lock()
	f.opened = append(f.opened, p)
	f.mu.Unlock()
	if err := f.errs[p]; err != nil {
		return command.Module{}, err
	}
	return f.mods[p], nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"weather.so":           {},
		"fun/dice.so":          {},
		"fun/deep/coinflip.so": {},
		"README.md":            {},
		"fun/notes.txt":        {},
	}
}

func TestDiscover(t *testing.T) {
	root := "cmds"
	opener := &fakeOpener{mods: map[string]command.Module{
		filepath.Join(root, "weather.so"):                 {Run: reply("sunny"), Help: "Tells the weather"},
		filepath.Join(root, "fun", "dice.so"):             {Run: reply("4"), Aliases: []string{"roll"}},
		filepath.Join(root, "fun", "deep", "coinflip.so"): {Run: reply("heads")},
	}}

	l := New(root, WithFS(testFS()), WithOpener(opener))
	descriptors, err := l.Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	want := []string{"coinflip", "dice", "weather"}
	if len(descriptors) != len(want) {
		t.Fatalf("expected %d descriptors, got %d", len(want), len(descriptors))
	}
	for i, name := range want {
		if descriptors[i].Name != name {
			t.Fatalf("descriptor %d: got %q, want %q", i, descriptors[i].Name, name)
		}
	}
	if descriptors[0].Help != command.DefaultHelp {
		t.Fatalf("expected default help, got %q", descriptors[0].Help)
	}
	if descriptors[1].Aliases[0] != "roll" {
		t.Fatalf("expected dice alias, got %v", descriptors[1].Aliases)
	}
	if len(opener.opened) != 3 {
		t.Fatalf("expected only module files to be opened, got %v", opener.opened)
	}
}

func TestDiscoverOpenFailureAborts(t *testing.T) {
	broken := errors.New("bad plugin")
	opener := &fakeOpener{
		mods: map[string]command.Module{
			"weather.so":  {Run: reply("sunny")},
			"fun/dice.so": {Run: reply("4")},
		},
		errs: map[string]error{filepath.Join("fun", "deep", "coinflip.so"): broken},
	}

	l := New("", WithFS(testFS()), WithOpener(opener))
	descriptors, err := l.Discover(context.Background())
	if descriptors != nil {
		t.Fatalf("expected no descriptors, got %v", descriptors)
	}

	var de *DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DiscoveryError, got %v", err)
	}
	if de.Path != "fun/deep/coinflip.so" || !errors.Is(err, broken) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDiscoverMissingRun(t *testing.T) {
	l := New("", WithFS(fstest.MapFS{"empty.so": {}}), WithOpener(&fakeOpener{}))
	if _, err := l.Discover(context.Background()); !errors.Is(err, ErrNoRun) {
		t.Fatalf("expected ErrNoRun, got %v", err)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope"), WithOpener(&fakeOpener{}))
	_, err := l.Discover(context.Background())

	var de *DiscoveryError
	if !errors.As(err, &de) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist DiscoveryError, got %v", err)
	}
}

func TestDiscoverCustomExtension(t *testing.T) {
	fsys := fstest.MapFS{"a.cmd": {}, "b.so": {}}
	opener := &fakeOpener{mods: map[string]command.Module{"a.cmd": {Run: reply("a")}}}

	l := New("", WithFS(fsys), WithOpener(opener), WithExtension(".cmd"), WithConcurrency(1))
	descriptors, err := l.Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(descriptors) != 1 || descriptors[0].Name != "a" {
		t.Fatalf("unexpected descriptors %+v", descriptors)
	}
}

func TestLoad(t *testing.T) {
	opener := &fakeOpener{mods: map[string]command.Module{
		"weather.so":                                {Run: reply("sunny")},
		filepath.Join("fun", "dice.so"):             {Run: reply("4")},
		filepath.Join("fun", "deep", "coinflip.so"): {Run: reply("heads")},
	}}
	builtins := map[string]command.Module{
		"ping": {Run: reply("pong")},
	}

	r := command.NewRegistry()
	if err := New("", WithFS(testFS()), WithOpener(opener)).Load(context.Background(), r, builtins); err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 commands, got %d", r.Len())
	}
	for _, name := range []string{"ping", "weather", "dice", "coinflip"} {
		if _, ok := r.Resolve(name); !ok {
			t.Fatalf("missing %q", name)
		}
	}
}

func TestLoadDuplicate(t *testing.T) {
	fsys := fstest.MapFS{"ping.so": {}}
	opener := &fakeOpener{mods: map[string]command.Module{"ping.so": {Run: reply("plugin pong")}}}
	builtins := map[string]command.Module{"ping": {Run: reply("pong")}}

	err := New("", WithFS(fsys), WithOpener(opener)).Load(context.Background(), command.NewRegistry(), builtins)
	var dup *command.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}

	r := command.NewRegistry(command.WithOverride(true))
	if err := New("", WithFS(fsys), WithOpener(opener)).Load(context.Background(), r, builtins); err != nil {
		t.Fatalf("load with override: %v", err)
	}
	d, _ := r.Resolve("ping")
	if got, _ := d.Handler(context.Background(), nil, nil, nil); got != "plugin pong" {
		t.Fatalf("discovered module should override the built-in, got %q", got)
	}
}

func TestLoadWithoutRoot(t *testing.T) {
	r := command.NewRegistry()
	builtins := map[string]command.Module{"ping": {Run: reply("pong")}}
	if err := New("").Load(context.Background(), r, builtins); err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected only built-ins, got %d", r.Len())
	}
}

func TestModuleFromSymbols(t *testing.T) {
	run := func(context.Context, *command.Bot, *command.Message, []string) (string, error) {
		return "ok", nil
	}
	aliases := []string{"x", "y"}
	help := "does things"

	symbols := map[string]plugin.Symbol{
		"Run":     run,
		"Aliases": &aliases,
		"Help":    &help,
	}
	lookup := func(name string) (plugin.Symbol, error) {
		sym, ok := symbols[name]
		if !ok {
			return nil, errors.New("symbol " + name + " not found")
		}
		return sym, nil
	}

	m, err := moduleFromSymbols(lookup)
	if err != nil {
		t.Fatalf("module: %v", err)
	}
	if got, _ := m.Run(context.Background(), nil, nil, nil); got != "ok" {
		t.Fatalf("unexpected run result %q", got)
	}
	if len(m.Aliases) != 2 || m.Help != help {
		t.Fatalf("unexpected module %+v", m)
	}

	handler := command.HandlerFunc(run)
	symbols["Run"] = &handler
	delete(symbols, "Aliases")
	delete(symbols, "Help")
	m, err = moduleFromSymbols(lookup)
	if err != nil || m.Run == nil || m.Aliases != nil || m.Help != "" {
		t.Fatalf("unexpected module %+v, err %v", m, err)
	}

	symbols["Help"] = 42
	if _, err := moduleFromSymbols(lookup); err == nil {
		t.Fatal("expected error for mistyped Help")
	}

	symbols["Run"] = "not a function"
	if _, err := moduleFromSymbols(lookup); err == nil {
		t.Fatal("expected error for mistyped Run")
	}

	delete(symbols, "Run")
	if _, err := moduleFromSymbols(lookup); err == nil {
		t.Fatal("expected error for missing Run")
	}
}
