// Package loader discovers command modules at startup and registers them.
//
// Modules come from two places: the built-ins compiled into the binary and
// files found by walking a directory. A file's command name is its base name
// without the extension. Files are opened in parallel, but nothing is
// registered until every open has settled, and any failure aborts the load.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zrma/trollsmile/command"
	"github.com/zrma/trollsmile/logging"
)

var ErrNoRun = errors.New("module has no Run handler")

// DiscoveryError reports a module that could not be found or opened.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("load command %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

type Opener interface {
	Open(path string) (command.Module, error)
}

type OpenerFunc func(path string) (command.Module, error)

func (f OpenerFunc) Open(path string) (command.Module, error) {
	return f(path)
}

type Loader struct {
	root   string
	fsys   fs.FS
	ext    string
	opener Opener
	limit  int
	logger logging.Logger
}

type Option func(*Loader)

// WithFS walks fsys instead of the root directory on disk. Paths handed to
// the opener are still joined onto root.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

func WithExtension(ext string) Option {
	return func(l *Loader) {
		l.ext = ext
	}
}

func WithOpener(o Opener) Option {
	return func(l *Loader) {
		l.opener = o
	}
}

// WithConcurrency caps how many modules are opened at once. Zero means no cap.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		l.limit = n
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New returns a Loader for root. An empty root disables discovery so only
// built-ins are loaded.
func New(root string, opts ...Option) *Loader {
	l := &Loader{
		root:   root,
		ext:    ".so",
		opener: OpenerFunc(OpenPlugin),
		logger: logging.Nop(),
	}
	if root != "" {
		l.fsys = os.DirFS(root)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Discover walks the directory and opens every module file in it.
// Descriptors come back in path order.
func (l *Loader) Discover(ctx context.Context) ([]command.Descriptor, error) {
	if l.fsys == nil {
		return nil, nil
	}

	var paths []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return &DiscoveryError{Path: p, Err: err}
		}
		if d.IsDir() || !strings.HasSuffix(p, l.ext) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	descriptors := make([]command.Descriptor, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if l.limit > 0 {
		g.SetLimit(l.limit)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := l.opener.Open(filepath.Join(l.root, filepath.FromSlash(p)))
			if err != nil {
				return &DiscoveryError{Path: p, Err: err}
			}
			if m.Run == nil {
				return &DiscoveryError{Path: p, Err: ErrNoRun}
			}
			descriptors[i] = command.NewDescriptor(strings.TrimSuffix(path.Base(p), l.ext), m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// Load registers builtins (by name) and then every discovered module into r.
func (l *Loader) Load(ctx context.Context, r *command.Registry, builtins map[string]command.Module) error {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	descriptors := make([]command.Descriptor, 0, len(builtins))
	for _, name := range names {
		descriptors = append(descriptors, command.NewDescriptor(name, builtins[name]))
	}

	discovered, err := l.Discover(ctx)
	if err != nil {
		return err
	}
	descriptors = append(descriptors, discovered...)

	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			return fmt.Errorf("register %s: %w", d.Name, err)
		}
		l.logger.Debug(
			"command loaded",
			"name", d.Name,
			"aliases", d.Aliases,
		)
	}

	l.logger.Info(
		"commands loaded",
		"count", r.Len(),
		"builtin", len(builtins),
		"discovered", len(discovered),
	)
	return nil
}
