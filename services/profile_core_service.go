package services

import (
	"context"
	"time"

	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/utils"
)

// extractionContext carries the identity fields and the outputs of earlier
// extractors to the ones that depend on them. It lives for one record.
type extractionContext struct {
	posts     []string
	postsText string

	name          string
	age           string
	gender        string
	maritalStatus string
	education     string
	job           string
	location      string

	interests  models.InterestDistribution
	activities []string
	habits     []string
	hobby      string
}

func newExtractionContext(rec models.RawUserRecord) *extractionContext {
	posts := append([]string(nil), rec.Posts...)
	return &extractionContext{
		posts:         posts,
		postsText:     utils.JoinPosts(posts),
		name:          rec.DisplayName(),
		age:           rec.AgeOrUnknown(),
		gender:        rec.GenderOrUnknown(),
		maritalStatus: rec.MaritalStatusOrUnknown(),
		education:     rec.EducationOrUnknown(),
		job:           rec.JobOrUnknown(),
		location:      rec.LocationOrUnknown(),
	}
}

// ProfileAnalyzer runs the field extractors for one record at a time.
type ProfileAnalyzer struct {
	gen         TextGenerator
	callTimeout time.Duration
}

// NewProfileAnalyzer returns an analyzer using gen for model calls. A nil gen
// behaves as an unavailable model; callTimeout <= 0 selects the default.
func NewProfileAnalyzer(gen TextGenerator, callTimeout time.Duration) *ProfileAnalyzer {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &ProfileAnalyzer{gen: gen, callTimeout: callTimeout}
}

// generate issues one model call under its own timeout. Every failure,
// including the timeout, is reported to the caller as an error and logged.
func (a *ProfileAnalyzer) generate(ctx context.Context, field, prompt string) (string, error) {
	if a.gen == nil {
		return "", ErrModelUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	startTime := time.Now()
	reply, err := a.gen.Generate(callCtx, prompt)
	if err != nil {
		logger.Warn("model call failed, using fallback",
			"field", field,
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", err
	}
	return reply, nil
}

// AnalyzeUser assembles the profile of one record. It never fails: every
// field that cannot be extracted takes its default.
func (a *ProfileAnalyzer) AnalyzeUser(ctx context.Context, rec models.RawUserRecord) models.UserProfile {
	ec := newExtractionContext(rec)
	logger.Info("Analyzing profile", "user", ec.name, "posts", len(ec.posts))

	ec.interests = guard("top_interests", defaultInterestDistribution, func() models.InterestDistribution {
		return a.extractInterests(ctx, ec)
	})
	summary := guard("personality_summary", func() string { return defaultPersonalitySummary }, func() string {
		return a.generatePersonalitySummary(ctx, ec)
	})
	ec.activities = guard("key_activities", emptyList, func() []string {
		return a.extractKeyActivities(ctx, ec)
	})
	hh := guard("habits_hobby", func() habitsHobby { return habitsHobby{habits: []string{}} }, func() habitsHobby {
		habits, hobby := a.extractHabitsHobby(ctx, ec)
		return habitsHobby{habits: habits, hobby: hobby}
	})
	ec.habits, ec.hobby = hh.habits, hh.hobby

	travel := guard("travel_frequency", func() string { return models.TravelNone }, func() string {
		return ClassifyTravel(ec.posts)
	})
	life := guard("life_indicators", GenericLifestylePhrases, func() []string {
		return classifyLifeIndicators(lifeIndicatorInput{
			posts:      ec.posts,
			activities: ec.activities,
			habits:     ec.habits,
			hobby:      ec.hobby,
			interests:  ec.interests,
			job:        ec.job,
		})
	})
	spending := guard("spending_indicators", func() []string { return append([]string(nil), spendingFailurePair...) }, func() []string {
		return a.extractSpendingIndicators(ctx, ec)
	})

	topHabits := ec.habits
	if len(topHabits) == 0 {
		topHabits = []string{models.NoneValue}
	}
	topHobby := ec.hobby
	if topHobby == "" {
		topHobby = models.NoneValue
	}

	firstName, lastName := utils.SplitFullName(ec.name)
	return models.UserProfile{
		FirstName:          firstName,
		LastName:           lastName,
		Age:                ec.age,
		Gender:             ec.gender,
		MaritalStatus:      ec.maritalStatus,
		Education:          ec.education,
		Job:                ec.job,
		Location:           ec.location,
		TopInterests:       ec.interests,
		PersonalitySummary: summary,
		KeyActivities:      ec.activities,
		TotalPosts:         len(ec.posts),
		TopHabits:          topHabits,
		TopHobby:           topHobby,
		TravelFrequency:    travel,
		LifeIndicators:     life,
		SpendingIndicators: spending,
	}
}

type habitsHobby struct {
	habits []string
	hobby  string
}

func emptyList() []string { return []string{} }

// guard runs one extractor and substitutes its default if it panics.
func guard[T any](field string, def func() T, extract func() T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("extractor panicked, using default", "field", field, "panic", r)
			result = def()
		}
	}()
	return extract()
}
