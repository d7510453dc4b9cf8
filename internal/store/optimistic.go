package store

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/logger"
	log "github.com/sirupsen/logrus"
)

type mutation struct {
	// apply changes the local state. An error aborts before any remote call.
	apply func(state *State) error
	// remote persists the change.
	remote func(ctx context.Context) error
	// refetch reconciles the local state with the backend after a successful write.
	refetch func(ctx context.Context, state *State) error
}

func (s *Store) mutate(ctx context.Context, m mutation) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.mu.Lock()
	snapshot := s.state.clone()
	working := s.state.clone()
	if err := m.apply(&working); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = working
	s.mu.Unlock()

	if err := m.remote(ctx); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}

	if m.refetch == nil {
		return nil
	}

	s.mu.Lock()
	fresh := s.state.clone()
	s.mu.Unlock()

	if err := m.refetch(ctx, &fresh); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Warnf("refetch after write failed for user %s, keeping local state: %v", s.userID, err)
		return nil
	}

	s.mu.Lock()
	s.state = fresh
	s.mu.Unlock()
	return nil
}
