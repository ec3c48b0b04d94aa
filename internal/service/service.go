// Package service implements the activities API's business rules between
// the HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/observability"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
)

// ErrEmailRequired is returned when the email parameter is blank.
var ErrEmailRequired = errors.New("email is required")

// ActivityService orchestrates catalog reads and enrolment changes.
type ActivityService struct {
	activities repository.ActivityRepository
	log        *zap.Logger
}

// NewActivityService constructs an ActivityService with its dependencies.
func NewActivityService(activities repository.ActivityRepository, log *zap.Logger) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityService{activities: activities, log: log}
}

// ListActivities returns the whole catalog.
func (s *ActivityService) ListActivities(ctx context.Context) (model.Catalog, error) {
	catalog, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return catalog, nil
}

// Signup enrols email in activity and returns the confirmation message.
func (s *ActivityService) Signup(ctx context.Context, activity, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		observability.RecordRegistration("signup", "invalid")
		return "", ErrEmailRequired
	}

	if err := s.activities.AddParticipant(ctx, activity, email); err != nil {
		observability.RecordRegistration("signup", resultLabel(err))
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("sign up for activity: %w", err)
	}

	observability.RecordRegistration("signup", "ok")
	s.log.Info("participant signed up", zap.String("activity", activity), zap.String("email", email))
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from activity and returns the confirmation message.
func (s *ActivityService) Unregister(ctx context.Context, activity, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		observability.RecordRegistration("unregister", "invalid")
		return "", ErrEmailRequired
	}

	if err := s.activities.RemoveParticipant(ctx, activity, email); err != nil {
		observability.RecordRegistration("unregister", resultLabel(err))
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister from activity: %w", err)
	}

	observability.RecordRegistration("unregister", "ok")
	s.log.Info("participant unregistered", zap.String("activity", activity), zap.String("email", email))
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrAlreadySignedUp) ||
		errors.Is(err, repository.ErrNotSignedUp) ||
		errors.Is(err, repository.ErrActivityFull)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return "duplicate"
	case errors.Is(err, repository.ErrNotSignedUp):
		return "not_signed_up"
	case errors.Is(err, repository.ErrActivityFull):
		return "full"
	default:
		return "error"
	}
}
