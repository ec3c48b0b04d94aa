package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/observability"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) (model.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Catalog), args.Error(1)
}

func (m *MockRepository) AddParticipant(ctx context.Context, activity, email string) error {
	return m.Called(ctx, activity, email).Error(0)
}

func (m *MockRepository) RemoveParticipant(ctx context.Context, activity, email string) error {
	return m.Called(ctx, activity, email).Error(0)
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		repoErr error
		wantMsg string
		wantErr error
		label   string
	}{
		{
			name:    "signs up",
			email:   " student@mergington.edu ",
			wantMsg: "Signed up student@mergington.edu for Soccer Club",
			label:   "ok",
		},
		{name: "blank email", email: "   ", wantErr: ErrEmailRequired, label: "invalid"},
		{name: "duplicate", email: "a@b.edu", repoErr: repository.ErrAlreadySignedUp, wantErr: repository.ErrAlreadySignedUp, label: "duplicate"},
		{name: "missing activity", email: "a@b.edu", repoErr: repository.ErrNotFound, wantErr: repository.ErrNotFound, label: "not_found"},
		{name: "full", email: "a@b.edu", repoErr: repository.ErrActivityFull, wantErr: repository.ErrActivityFull, label: "full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.wantErr != ErrEmailRequired {
				repo.On("AddParticipant", mock.Anything, "Soccer Club", "student@mergington.edu").Return(tt.repoErr).Maybe()
				repo.On("AddParticipant", mock.Anything, "Soccer Club", "a@b.edu").Return(tt.repoErr).Maybe()
			}
			svc := NewActivityService(repo, nil)

			counter := observability.Registrations.WithLabelValues("signup", tt.label)
			before := testutil.ToFloat64(counter)

			msg, err := svc.Signup(context.Background(), "Soccer Club", tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantMsg, msg)
			}
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
			repo.AssertExpectations(t)
		})
	}
}

func TestSignup_WrapsUnexpectedErrors(t *testing.T) {
	repo := new(MockRepository)
	boom := errors.New("connection reset")
	repo.On("AddParticipant", mock.Anything, "Chess Club", "a@b.edu").Return(boom)

	_, err := NewActivityService(repo, nil).Signup(context.Background(), "Chess Club", "a@b.edu")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sign up for activity")
}

func TestUnregister(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RemoveParticipant", mock.Anything, "Chess Club", "michael@mergington.edu").Return(nil)
	repo.On("RemoveParticipant", mock.Anything, "Chess Club", "nobody@mergington.edu").Return(repository.ErrNotSignedUp)
	svc := NewActivityService(repo, nil)

	msg, err := svc.Unregister(context.Background(), "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", msg)

	_, err = svc.Unregister(context.Background(), "Chess Club", "nobody@mergington.edu")
	assert.ErrorIs(t, err, repository.ErrNotSignedUp)

	_, err = svc.Unregister(context.Background(), "Chess Club", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	repo.AssertExpectations(t)
}

func TestListActivities(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return(repository.DefaultActivities(), nil).Once()
	repo.On("List", mock.Anything).Return(nil, errors.New("db down")).Once()
	svc := NewActivityService(repo, nil)

	catalog, err := svc.ListActivities(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog, 9)

	_, err = svc.ListActivities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list activities")
}
