package experience

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/store"
	"github.com/jonathan/jobboard/internal/types"
	"go.uber.org/zap"
)

// Service edits the work history stored on user profiles. Every change loads
// the profile, applies the edit through a List and writes the whole profile
// back.
type Service struct {
	users  *store.Collection[types.User]
	now    func() time.Time
	logger *zap.Logger
}

func NewService(st store.Store, now func() time.Time, logger *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:  store.NewCollection[types.User](st, store.CollectionUsers),
		now:    now,
		logger: logging.OrNop(logger),
	}
}

// Summary returns the user's work history with durations.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	u, err := s.user(ctx, "experience.Summary", userID)
	if err != nil {
		return Summary{}, err
	}
	return NewList(u.Profile.WorkExperiences, s.now).Summary(), nil
}

// Add validates d and appends it to the user's history.
func (s *Service) Add(ctx context.Context, userID string, d Draft) (Summary, error) {
	return s.edit(ctx, "experience.Add", userID, func(l *List) error {
		rec, err := checked("experience.Add", d)
		if err != nil {
			return err
		}
		l.Add(rec)
		return nil
	})
}

// Replace validates d and overwrites the entry at index.
func (s *Service) Replace(ctx context.Context, userID string, index int, d Draft) (Summary, error) {
	return s.edit(ctx, "experience.Replace", userID, func(l *List) error {
		rec, err := checked("experience.Replace", d)
		if err != nil {
			return err
		}
		return l.Replace(index, rec)
	})
}

// Remove deletes the entry at index.
func (s *Service) Remove(ctx context.Context, userID string, index int) (Summary, error) {
	return s.edit(ctx, "experience.Remove", userID, func(l *List) error {
		return l.Remove(index)
	})
}

func (s *Service) edit(ctx context.Context, op, userID string, apply func(*List) error) (Summary, error) {
	u, err := s.user(ctx, op, userID)
	if err != nil {
		return Summary{}, err
	}

	list := NewList(u.Profile.WorkExperiences, s.now)
	if err := apply(list); err != nil {
		return Summary{}, err
	}

	u.Profile.WorkExperiences = list.Items()
	if _, err := s.users.Update(ctx, u); err != nil {
		return Summary{}, err
	}

	s.logger.Debug("work experience updated",
		zap.String("op", op),
		zap.String("user_id", userID),
		zap.Int("entries", list.Len()))
	return list.Summary(), nil
}

func (s *Service) user(ctx context.Context, op, id string) (types.User, error) {
	u, ok, err := s.users.Find(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	if !ok {
		return types.User{}, apperrors.NotFound(op, fmt.Sprintf("user %s not found", id), nil)
	}
	return u, nil
}

func checked(op string, d Draft) (types.WorkExperience, error) {
	if errs := d.Validate(); len(errs) > 0 {
		return types.WorkExperience{}, apperrors.Validation(op, errs)
	}
	rec := d.Record()
	if err := schemas.Check(op, schemas.WorkExperience, rec); err != nil {
		return types.WorkExperience{}, err
	}
	return rec, nil
}
