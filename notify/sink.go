package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Sink delivers a message to a user's contact address. Delivery is
// fire-and-forget from the caller's point of view: callers log a failed
// Send but do not fail their own operation because of it.
type Sink interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ErrEmptyRecipient signals a Send with no destination address.
var ErrEmptyRecipient = errors.New("notify: empty recipient")

// LogSink writes messages to the process log. It stands in for a real
// email or chat delivery backend.
type LogSink struct{}

// NewLogSink creates a log-backed sink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Send logs the message instead of delivering it.
func (s *LogSink) Send(_ context.Context, to, subject, body string) error {
	if to == "" {
		return ErrEmptyRecipient
	}
	log.Printf("notify: to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// Fanout delivers the same message through several sinks concurrently.
// All sinks are attempted even when one fails; the first error is returned.
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a fanout over the given sinks.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Send dispatches to every underlying sink in parallel.
func (f *Fanout) Send(ctx context.Context, to, subject, body string) error {
	var g errgroup.Group
	for _, sink := range f.sinks {
		g.Go(func() error {
			if err := sink.Send(ctx, to, subject, body); err != nil {
				return fmt.Errorf("notify: fanout send: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}
