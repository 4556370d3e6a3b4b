package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/utils"
)

// BatchOptions tunes a BatchRunner.
type BatchOptions struct {
	Cooldown     time.Duration // pause after each assembled record
	SkipExisting bool          // skip records whose fingerprint is already stored
}

// BatchResult summarizes one run.
type BatchResult struct {
	RunID        string
	Profiles     []models.UserProfile
	Processed    int
	Skipped      int
	Saved        int
	SaveFailures int
}

// BatchRunner analyzes records strictly one after another.
type BatchRunner struct {
	analyzer Analyzer
	sink     ProfileSink
	index    FingerprintIndex
	opts     BatchOptions
}

// NewBatchRunner returns a runner. sink may be nil; when it also implements
// FingerprintIndex it backs SkipExisting.
func NewBatchRunner(analyzer Analyzer, sink ProfileSink, opts BatchOptions) *BatchRunner {
	b := &BatchRunner{analyzer: analyzer, sink: sink, opts: opts}
	if idx, ok := sink.(FingerprintIndex); ok {
		b.index = idx
	}
	return b
}

// Run processes records in order. On cancellation it returns the profiles
// assembled so far together with ctx.Err().
func (b *BatchRunner) Run(ctx context.Context, records []models.RawUserRecord) (BatchResult, error) {
	res := BatchResult{
		RunID:    uuid.NewString(),
		Profiles: make([]models.UserProfile, 0, len(records)),
	}
	total := len(records)
	logger.Info("Starting batch", "run_id", res.RunID, "records", total, "cooldown_ms", b.opts.Cooldown.Milliseconds())

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			logger.Warn("batch cancelled", "run_id", res.RunID, "processed", res.Processed, "error", err)
			return res, err
		}
		logger.Info(fmt.Sprintf("Processing user %d/%d", i+1, total), "run_id", res.RunID, "user", rec.DisplayName())

		hash := utils.FingerprintRecord(rec)
		if b.opts.SkipExisting && b.index != nil {
			exists, err := b.index.ExistsBySourceHash(ctx, hash)
			if err != nil {
				logger.Warn("fingerprint lookup failed, analyzing anyway", "user", rec.DisplayName(), "error", err)
			} else if exists {
				logger.Debug("profile already stored, skipping", "user", rec.DisplayName(), "source_hash", hash)
				res.Skipped++
				continue
			}
		}

		profile := b.analyzer.AnalyzeUser(ctx, rec)
		res.Profiles = append(res.Profiles, profile)
		res.Processed++

		if b.sink != nil {
			id, err := b.sink.SaveProfile(ctx, models.NewProfileRecord(profile, res.RunID, hash))
			if err != nil {
				res.SaveFailures++
				logger.Error("failed to save profile", "user", rec.DisplayName(), "error", err)
			} else {
				res.Saved++
				logger.Debug("profile saved", "user", rec.DisplayName(), "id", id)
			}
		}

		if err := cooldown(ctx, b.opts.Cooldown); err != nil {
			logger.Warn("batch cancelled", "run_id", res.RunID, "processed", res.Processed, "error", err)
			return res, err
		}
	}

	logger.Info("Batch finished",
		"run_id", res.RunID,
		"processed", res.Processed,
		"skipped", res.Skipped,
		"saved", res.Saved,
		"save_failures", res.SaveFailures)
	return res, nil
}

// cooldown waits d or until ctx is done.
func cooldown(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
