// Package session buffers the output of one remote dispatch until the loop
// has finished with it.
package session

import (
	"sync"

	"github.com/zrma/trollsmile/command"
)

func New() *Session {
	return &Session{done: make(chan struct{})}
}

type Session struct {
	sync.Mutex

	payloads []command.Payload
	done     chan struct{}
	once     sync.Once
}

func (s *Session) Send(p command.Payload) error {
	s.Lock()
	defer s.Unlock()

	s.payloads = append(s.payloads, p)
	return nil
}

// Get drains the buffered payloads.
func (s *Session) Get() []command.Payload {
	s.Lock()
	defer s.Unlock()

	if len(s.payloads) == 0 {
		return nil
	}

	payloads := s.payloads
	s.payloads = nil

	return payloads
}

func (s *Session) Settle() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Done is closed once the message owning this session has been handled.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
