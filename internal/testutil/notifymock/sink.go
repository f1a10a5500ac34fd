package notifymock

import (
	"context"
	"sync"
)

// Sink records every Send call; SendFn, when set, decides the result.
type Sink struct {
	mu    sync.Mutex
	calls []Call

	SendFn func(ctx context.Context, phone, message string) error
}

type Call struct {
	Phone   string
	Message string
}

func (s *Sink) Send(ctx context.Context, phone, message string) error {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Phone: phone, Message: message})
	s.mu.Unlock()
	if s.SendFn != nil {
		return s.SendFn(ctx, phone, message)
	}
	return nil
}

func (s *Sink) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}
