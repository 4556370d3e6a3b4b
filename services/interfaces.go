package services

import (
	"context"

	"github.com/mayagamaleldin/graduationproject/models"
)

// TextGenerator is the generative model boundary. An error of any kind is
// treated as "model unavailable" by the extractors.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProfileSink receives every profile a batch assembles.
type ProfileSink interface {
	SaveProfile(ctx context.Context, rec models.ProfileRecord) (int64, error)
}

// FingerprintIndex reports whether a raw record was already analyzed.
type FingerprintIndex interface {
	ExistsBySourceHash(ctx context.Context, hash string) (bool, error)
}

// Analyzer assembles one profile from one raw record.
type Analyzer interface {
	AnalyzeUser(ctx context.Context, rec models.RawUserRecord) models.UserProfile
}
