package service

import (
	"time"

	"slotledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDuration = errs.New("service duration must be positive")

// Service supplies the duration used to size a booking from its start time.
// Immutable for scheduling purposes: changing a duration never resizes
// existing bookings.
type Service struct {
	id              uuid.UUID
	name            string
	durationMinutes int
}

func NewService(id uuid.UUID, name string, durationMinutes int) (*Service, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Service{
		id:              id,
		name:            name,
		durationMinutes: durationMinutes,
	}, nil
}

func (s *Service) ID() uuid.UUID        { return s.id }
func (s *Service) Name() string         { return s.name }
func (s *Service) DurationMinutes() int { return s.durationMinutes }

func (s *Service) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}

// EndFor computes a booking end from its start using this service's duration.
func (s *Service) EndFor(start time.Time) time.Time {
	return start.Add(s.Duration())
}
