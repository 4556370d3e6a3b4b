package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/utils"
)

// nameAnalyzer returns a profile carrying only the record's name.
type nameAnalyzer struct {
	mu    sync.Mutex
	calls []string
	after func()
}

func (a *nameAnalyzer) AnalyzeUser(ctx context.Context, rec models.RawUserRecord) models.UserProfile {
	a.mu.Lock()
	a.calls = append(a.calls, rec.DisplayName())
	a.mu.Unlock()
	if a.after != nil {
		a.after()
	}
	return models.UserProfile{FirstName: rec.DisplayName()}
}

type memorySink struct {
	mu       sync.Mutex
	saved    []models.ProfileRecord
	existing map[string]bool
	saveErr  error
}

func (s *memorySink) SaveProfile(ctx context.Context, rec models.ProfileRecord) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, rec)
	return int64(len(s.saved)), nil
}

func (s *memorySink) ExistsBySourceHash(ctx context.Context, hash string) (bool, error) {
	return s.existing[hash], nil
}

func batchRecords() []models.RawUserRecord {
	return []models.RawUserRecord{
		{UserName: "ana", Posts: []string{"one"}},
		{UserName: "ben", Posts: []string{"two"}},
		{UserName: "cy", Posts: []string{"three"}},
	}
}

func TestBatchRunnerProcessesInOrder(t *testing.T) {
	analyzer := &nameAnalyzer{}
	sink := &memorySink{}

	res, err := NewBatchRunner(analyzer, sink, BatchOptions{}).Run(context.Background(), batchRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"ana", "ben", "cy"}, analyzer.calls)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 3, res.Saved)
	assert.Zero(t, res.SaveFailures)
	require.Len(t, res.Profiles, 3)
	assert.Equal(t, "cy", res.Profiles[2].FirstName)

	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)
	require.Len(t, sink.saved, 3)
	for i, rec := range sink.saved {
		assert.Equal(t, res.RunID, rec.RunID)
		assert.Equal(t, utils.FingerprintRecord(batchRecords()[i]), rec.SourceHash)
	}
}

func TestBatchRunnerWithoutSink(t *testing.T) {
	res, err := NewBatchRunner(&nameAnalyzer{}, nil, BatchOptions{}).Run(context.Background(), batchRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Zero(t, res.Saved)
}

func TestBatchRunnerCountsSaveFailures(t *testing.T) {
	sink := &memorySink{saveErr: errors.New("disk full")}

	res, err := NewBatchRunner(&nameAnalyzer{}, sink, BatchOptions{}).Run(context.Background(), batchRecords())
	require.NoError(t, err)

	assert.Len(t, res.Profiles, 3)
	assert.Equal(t, 3, res.SaveFailures)
	assert.Zero(t, res.Saved)
}

func TestBatchRunnerSkipsExisting(t *testing.T) {
	records := batchRecords()
	sink := &memorySink{existing: map[string]bool{utils.FingerprintRecord(records[1]): true}}
	analyzer := &nameAnalyzer{}

	res, err := NewBatchRunner(analyzer, sink, BatchOptions{SkipExisting: true}).Run(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []string{"ana", "cy"}, analyzer.calls)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, res.Processed)

	analyzer = &nameAnalyzer{}
	res, err = NewBatchRunner(analyzer, sink, BatchOptions{}).Run(context.Background(), records)
	require.NoError(t, err)
	assert.Len(t, analyzer.calls, 3, "skip_existing off analyzes everything")
	assert.Zero(t, res.Skipped)
}

func TestBatchRunnerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	analyzer := &nameAnalyzer{after: cancel}

	res, err := NewBatchRunner(analyzer, nil, BatchOptions{Cooldown: time.Hour}).Run(ctx, batchRecords())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Processed)
	assert.Len(t, res.Profiles, 1)
}

func TestBatchRunnerCooldown(t *testing.T) {
	start := time.Now()
	_, err := NewBatchRunner(&nameAnalyzer{}, nil, BatchOptions{Cooldown: 20 * time.Millisecond}).Run(context.Background(), batchRecords())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestProfileServiceWithoutStore(t *testing.T) {
	svc := NewProfileService(&nameAnalyzer{}, nil)
	ctx := context.Background()

	assert.False(t, svc.StoreEnabled())

	p, id, err := svc.AnalyzeOne(ctx, models.RawUserRecord{UserName: "ana"}, false)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.Equal(t, "ana", p.FirstName)

	_, _, err = svc.AnalyzeOne(ctx, models.RawUserRecord{UserName: "ana"}, true)
	assert.ErrorIs(t, err, ErrStoreDisabled)

	_, err = svc.GetProfile(ctx, 1)
	assert.ErrorIs(t, err, ErrStoreDisabled)
	_, err = svc.ListProfiles(ctx, 10, 0)
	assert.ErrorIs(t, err, ErrStoreDisabled)

	res, err := svc.RunBatch(ctx, batchRecords(), BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
}
