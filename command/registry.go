package command

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Registry maps canonical names and aliases to descriptors. It is filled once
// at startup and only read afterwards, so it carries no lock.
type Registry struct {
	override bool
	commands map[string]Descriptor
	aliases  map[string]string
}

type Option func(*Registry)

// WithOverride lets a later registration replace an earlier command of the
// same name and take over aliases held by other commands.
func WithOverride(allow bool) Option {
	return func(r *Registry) {
		r.override = allow
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]Descriptor),
		aliases:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" || d.Handler == nil {
		return fmt.Errorf("%w: %q", ErrInvalidDescriptor, d.Name)
	}
	if _, ok := r.aliases[d.Name]; ok {
		return &DuplicateNameError{Name: d.Name}
	}
	_, replacing := r.commands[d.Name]
	if replacing && !r.override {
		return &DuplicateNameError{Name: d.Name}
	}

	seen := make(map[string]struct{}, len(d.Aliases))
	for _, alias := range d.Aliases {
		if alias == "" {
			return fmt.Errorf("%w: empty alias for %q", ErrInvalidDescriptor, d.Name)
		}
		if alias == d.Name {
			return &DuplicateAliasError{Alias: alias, Owner: d.Name, NameCollision: true}
		}
		if _, dup := seen[alias]; dup {
			return &DuplicateAliasError{Alias: alias, Owner: d.Name}
		}
		seen[alias] = struct{}{}

		if _, ok := r.commands[alias]; ok {
			return &DuplicateAliasError{Alias: alias, Owner: alias, NameCollision: true}
		}
		owner, taken := r.aliases[alias]
		if taken && owner != d.Name && !r.override {
			return &DuplicateAliasError{Alias: alias, Owner: owner}
		}
	}

	// nothing fails past this point
	if replacing {
		for _, alias := range r.commands[d.Name].Aliases {
			delete(r.aliases, alias)
		}
	}
	d.Aliases = append([]string(nil), d.Aliases...)
	for _, alias := range d.Aliases {
		if owner, ok := r.aliases[alias]; ok {
			r.dropAlias(owner, alias)
		}
		r.aliases[alias] = d.Name
	}
	r.commands[d.Name] = d
	return nil
}

func (r *Registry) dropAlias(name, alias string) {
	d := r.commands[name]
	kept := make([]string, 0, len(d.Aliases))
	for _, a := range d.Aliases {
		if a != alias {
			kept = append(kept, a)
		}
	}
	d.Aliases = kept
	r.commands[name] = d
}

// Resolve looks name up as a canonical name first, then as an alias.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	if d, ok := r.commands[name]; ok {
		return d.clone(), true
	}
	if canonical, ok := r.aliases[name]; ok {
		d, ok := r.commands[canonical]
		return d.clone(), ok
	}
	return Descriptor{}, false
}

// Names returns every canonical name and alias.
func (r *Registry) Names() mapset.Set[string] {
	names := mapset.NewThreadUnsafeSetWithSize[string](len(r.commands) + len(r.aliases))
	for name := range r.commands {
		names.Add(name)
	}
	for alias := range r.aliases {
		names.Add(alias)
	}
	return names
}

// List returns the registered descriptors ordered by name.
func (r *Registry) List() []Descriptor {
	list := make([]Descriptor, 0, len(r.commands))
	for _, d := range r.commands {
		list = append(list, d.clone())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (r *Registry) Len() int {
	return len(r.commands)
}
