package command

import (
	"errors"
	"fmt"
)

var ErrInvalidDescriptor = errors.New("invalid command descriptor")

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("command %q already registered", e.Name)
}

// DuplicateAliasError reports an alias that is already taken. Owner is the
// canonical name currently holding it. NameCollision is set when the alias is
// itself a canonical name (including the name being registered).
type DuplicateAliasError struct {
	Alias         string
	Owner         string
	NameCollision bool
}

func (e *DuplicateAliasError) Error() string {
	if e.NameCollision {
		return fmt.Sprintf("alias %q collides with a command name", e.Alias)
	}
	return fmt.Sprintf("alias %q already registered for %q", e.Alias, e.Owner)
}

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
