package routing

import (
	"context"

	da "github.com/lintang-b-s/Gridstar/pkg/datastructure"
	"golang.org/x/sync/errgroup"
)

// Stream runs a search on its own goroutine and publishes every StepEvent on a bounded channel. a slow consumer
// slows the search down; cancelling the stream (or its parent context) makes the search return CANCELLED.
type Stream struct {
	events chan StepEvent
	cancel context.CancelFunc
	group  *errgroup.Group
	result *SearchResult
}

func NewStream(ctx context.Context, router Router, start, end da.Coordinate, buffer int) *Stream {
	if buffer <= 0 {
		buffer = DEFAULT_STREAM_BUFFER
	}
	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)

	s := &Stream{
		events: make(chan StepEvent, buffer),
		cancel: cancel,
		group:  group,
	}

	group.Go(func() error {
		defer close(s.events)
		res, err := router.FindPathContext(gctx, start, end, func(ev StepEvent) StepSignal {
			select {
			case s.events <- ev:
				return CONTINUE
			case <-gctx.Done():
				return CANCEL
			}
		})
		if err != nil {
			return err
		}
		s.result = res
		return nil
	})

	return s
}

// Events closed once the search returns.
func (s *Stream) Events() <-chan StepEvent {
	return s.events
}

func (s *Stream) Cancel() {
	s.cancel()
}

// Wait blocks until the search returns. events left in the channel are discarded.
func (s *Stream) Wait() (*SearchResult, error) {
	go func() {
		for range s.events {
		}
	}()
	err := s.group.Wait()
	s.cancel()
	return s.result, err
}
