package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayagamaleldin/graduationproject/config"
	"github.com/mayagamaleldin/graduationproject/db"
	"github.com/mayagamaleldin/graduationproject/models"
)

func newTestStore(t *testing.T) *ProfileStore {
	t.Helper()
	cfg := &config.Config{}
	cfg.DB.Driver = "sqlite"
	cfg.DB.DSN = ":memory:"

	ctx := context.Background()
	conn, err := db.OpenWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn, db.SQLite))

	store := NewProfileStore(conn)
	store.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return store
}

func storedProfile(name string) models.UserProfile {
	return models.UserProfile{
		FirstName: name,
		LastName:  "Test",
		Age:       "40",
		Job:       "Pilot",
		TopInterests: models.InterestDistribution{Shares: []models.InterestShare{
			{Interest: "traveling", Percentage: 70},
			{Interest: "food", Percentage: 20},
			{Interest: "music", Percentage: 10},
		}},
		PersonalitySummary: "Calm under pressure.",
		KeyActivities:      []string{"Flew to Cairo"},
		TotalPosts:         2,
		TopHabits:          []string{"early flights"},
		TopHobby:           "none",
		TravelFrequency:    models.TravelFrequent,
		LifeIndicators:     []string{"a", "b", "c"},
		SpendingIndicators: []string{"x", "y"},
	}
}

func TestProfileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := models.NewProfileRecord(storedProfile("Nadia"), "run-1", "hash-1")
	id, err := store.InsertProfile(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := store.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, got.CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)), "created_at %v", got.CreatedAt)

	want := storedProfile("Nadia")
	if diff := cmp.Diff(want, got.Profile()); diff != "" {
		t.Errorf("stored profile mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileStoreListAndExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"a", "b", "c"} {
		_, err := store.SaveProfile(ctx, models.NewProfileRecord(storedProfile(name), "run", "hash-"+name))
		require.NoError(t, err, "insert %d", i)
	}

	page, err := store.ListProfiles(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].FirstName, "newest first")
	assert.Equal(t, "b", page[1].FirstName)

	page, err = store.ListProfiles(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].FirstName)

	exists, err := store.ExistsBySourceHash(ctx, "hash-b")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.ExistsBySourceHash(ctx, "hash-z")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProfileStoreClosedDB(t *testing.T) {
	conn, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = NewProfileStore(conn).ListProfiles(context.Background(), 10, 0)
	assert.Error(t, err)
}
