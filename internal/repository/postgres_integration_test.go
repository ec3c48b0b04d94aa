//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Shivanand-hulikatti/activity-board/internal/database"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

func newPostgresRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("activities"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.Eventually(t, func() bool { return pool.Ping(ctx) == nil }, 30*time.Second, 500*time.Millisecond)
	require.NoError(t, database.Migrate(ctx, pool))

	return NewPostgresRepository(pool)
}

func TestPostgresRepository_SeedAndList(t *testing.T) {
	ctx := context.Background()
	repo := newPostgresRepo(t)

	require.NoError(t, repo.Seed(ctx, DefaultActivities()))
	// seeding twice leaves the data alone
	require.NoError(t, repo.Seed(ctx, DefaultActivities()))

	catalog, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultActivities(), catalog)
}

func TestPostgresRepository_SignupAndUnregister(t *testing.T) {
	ctx := context.Background()
	repo := newPostgresRepo(t)
	require.NoError(t, repo.Seed(ctx, model.Catalog{
		"Chess Club": {Description: "d", Schedule: "s", MaxParticipants: 2, Participants: []string{}},
	}))

	require.NoError(t, repo.AddParticipant(ctx, "Chess Club", "a@mergington.edu"))
	assert.ErrorIs(t, repo.AddParticipant(ctx, "Chess Club", "a@mergington.edu"), ErrAlreadySignedUp)
	require.NoError(t, repo.AddParticipant(ctx, "Chess Club", "b@mergington.edu"))
	assert.ErrorIs(t, repo.AddParticipant(ctx, "Chess Club", "c@mergington.edu"), ErrActivityFull)
	assert.ErrorIs(t, repo.AddParticipant(ctx, "Nope", "a@mergington.edu"), ErrNotFound)

	require.NoError(t, repo.RemoveParticipant(ctx, "Chess Club", "a@mergington.edu"))
	assert.ErrorIs(t, repo.RemoveParticipant(ctx, "Chess Club", "a@mergington.edu"), ErrNotSignedUp)
	assert.ErrorIs(t, repo.RemoveParticipant(ctx, "Nope", "a@mergington.edu"), ErrNotFound)

	catalog, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@mergington.edu"}, catalog["Chess Club"].Participants)
}

func TestPostgresRepository_ConcurrentSignupsNeverOverbook(t *testing.T) {
	ctx := context.Background()
	repo := newPostgresRepo(t)
	require.NoError(t, repo.Seed(ctx, model.Catalog{
		"Math Team": {Description: "d", Schedule: "s", MaxParticipants: 3, Participants: []string{}},
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.AddParticipant(ctx, "Math Team", fmt.Sprintf("student%d@mergington.edu", i))
		}(i)
	}
	wg.Wait()

	catalog, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog["Math Team"].Participants, 3)
}
