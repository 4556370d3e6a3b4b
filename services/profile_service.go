package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/utils"
)

// ErrStoreDisabled is returned by store-backed operations when no database
// is configured.
var ErrStoreDisabled = errors.New("profile store is not configured")

// ProfileStore is the persistence the service reads from and writes to.
type ProfileStore interface {
	ProfileSink
	FingerprintIndex
	GetProfile(ctx context.Context, id int64) (models.ProfileRecord, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]models.ProfileRecord, error)
}

// ProfileService fronts the analyzer and the store for the HTTP API and the
// scheduler. Analysis runs are serialized so model calls never overlap.
type ProfileService struct {
	analyzer Analyzer
	store    ProfileStore
	mu       sync.Mutex
}

// NewProfileService returns a service; store may be nil.
func NewProfileService(analyzer Analyzer, store ProfileStore) *ProfileService {
	return &ProfileService{analyzer: analyzer, store: store}
}

// StoreEnabled reports whether a store is configured.
func (s *ProfileService) StoreEnabled() bool {
	return s.store != nil
}

// AnalyzeOne assembles the profile of rec and optionally stores it. The id
// is 0 when the profile was not saved.
func (s *ProfileService) AnalyzeOne(ctx context.Context, rec models.RawUserRecord, save bool) (models.UserProfile, int64, error) {
	if save && s.store == nil {
		return models.UserProfile{}, 0, ErrStoreDisabled
	}

	s.mu.Lock()
	profile := s.analyzer.AnalyzeUser(ctx, rec)
	s.mu.Unlock()

	if !save {
		return profile, 0, nil
	}
	id, err := s.store.SaveProfile(ctx, models.NewProfileRecord(profile, "", utils.FingerprintRecord(rec)))
	if err != nil {
		return profile, 0, fmt.Errorf("save profile: %w", err)
	}
	return profile, id, nil
}

// RunBatch analyzes records sequentially, saving to the store when one is
// configured.
func (s *ProfileService) RunBatch(ctx context.Context, records []models.RawUserRecord, opts BatchOptions) (BatchResult, error) {
	var sink ProfileSink
	if s.store != nil {
		sink = s.store
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return NewBatchRunner(s.analyzer, sink, opts).Run(ctx, records)
}

// GetProfile returns one stored profile.
func (s *ProfileService) GetProfile(ctx context.Context, id int64) (models.ProfileRecord, error) {
	if s.store == nil {
		return models.ProfileRecord{}, ErrStoreDisabled
	}
	return s.store.GetProfile(ctx, id)
}

// ListProfiles returns a page of stored profiles.
func (s *ProfileService) ListProfiles(ctx context.Context, limit, offset int) ([]models.ProfileRecord, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.ListProfiles(ctx, limit, offset)
}
