package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayagamaleldin/graduationproject/models"
)

func hikerRecord() models.RawUserRecord {
	return models.RawUserRecord{
		UserName: "Sara Ali",
		Age:      "29",
		Job:      "Engineer",
		Posts: []string{
			"I love hiking and photography trips",
			"Visited 3 countries this year",
			"Work is busy but I enjoy morning runs",
		},
	}
}

func hikerReplies() []StaticReply {
	return []StaticReply{
		{Marker: MarkerInterests, Reply: `[{"category":"photography","percentage":50},{"category":"nature","percentage":30},{"category":"fitness","percentage":20}]`},
		{Marker: MarkerPersonality, Reply: "An engineer who enjoys the outdoors."},
		{Marker: MarkerActivities, Reply: "1. Hiking\n2. Photography trips\n3. Morning runs"},
		{Marker: MarkerHabits, Reply: "Habits: morning runs, hiking\nHobby: photography"},
		{Marker: MarkerSpending, Reply: `["Outdoor gear purchases", "Travel expenses"]`},
	}
}

func TestAnalyzeUserEndToEnd(t *testing.T) {
	a := NewProfileAnalyzer(NewStaticGenerator(hikerReplies()), time.Second)

	got := a.AnalyzeUser(context.Background(), hikerRecord())

	want := models.UserProfile{
		FirstName:     "Sara",
		LastName:      "Ali",
		Age:           "29",
		Gender:        models.UnknownValue,
		MaritalStatus: models.UnknownValue,
		Education:     models.UnknownValue,
		Job:           "Engineer",
		Location:      models.UnknownValue,
		TopInterests: models.InterestDistribution{
			Shares: []models.InterestShare{
				{Interest: "photography", Percentage: 50},
				{Interest: "nature", Percentage: 30},
				{Interest: "fitness", Percentage: 20},
			},
			Source: models.InterestFromModel,
		},
		PersonalitySummary: "An engineer who enjoys the outdoors.",
		KeyActivities:      []string{"Hiking", "Photography trips", "Morning runs"},
		TotalPosts:         3,
		TopHabits:          []string{"morning runs", "hiking"},
		TopHobby:           "photography",
		// "trips" and "Visited" are the only two travel keyword hits
		TravelFrequency:    models.TravelRare,
		LifeIndicators:     []string{"Maintains morning routines", "Regular fitness practice", "Dedicated work engagement"},
		SpendingIndicators: []string{"Outdoor gear purchases", "Travel expenses"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnalyzeUser() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeUserIsIdempotent(t *testing.T) {
	a := NewProfileAnalyzer(NewStaticGenerator(hikerReplies()), time.Second)

	first := a.AnalyzeUser(context.Background(), hikerRecord())
	second := a.AnalyzeUser(context.Background(), hikerRecord())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestAnalyzeUserWithoutModel(t *testing.T) {
	a := NewProfileAnalyzer(nil, 0)

	got := a.AnalyzeUser(context.Background(), models.RawUserRecord{Posts: []string{}})

	want := models.UserProfile{
		FirstName:          models.UnknownValue,
		LastName:           "",
		Age:                models.UnknownValue,
		Gender:             models.UnknownValue,
		MaritalStatus:      models.UnknownValue,
		Education:          models.UnknownValue,
		Job:                models.UnknownValue,
		Location:           models.UnknownValue,
		TopInterests:       defaultInterestDistribution(),
		PersonalitySummary: defaultPersonalitySummary,
		KeyActivities:      []string{},
		TotalPosts:         0,
		TopHabits:          []string{models.NoneValue},
		TopHobby:           models.NoneValue,
		TravelFrequency:    models.TravelNone,
		LifeIndicators:     genericLifestylePhrases,
		SpendingIndicators: spendingFailurePair,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnalyzeUser() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeUserTimeoutFallsBack(t *testing.T) {
	a := NewProfileAnalyzer(blockingGenerator{}, 10*time.Millisecond)

	start := time.Now()
	got := a.AnalyzeUser(context.Background(), hikerRecord())

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, defaultPersonalitySummary, got.PersonalitySummary)
	assert.Equal(t, models.InterestFromKeyword, got.TopInterests.Source)
	assert.Equal(t, 100, got.TopInterests.Total())
	assert.Equal(t, []string{}, got.KeyActivities)
	assert.Equal(t, []string{models.NoneValue}, got.TopHabits)
	assert.Equal(t, spendingFailurePair, got.SpendingIndicators)
	assert.Equal(t, models.TravelRare, got.TravelFrequency)
}

func TestAnalyzeUserRecoversFromPanics(t *testing.T) {
	a := NewProfileAnalyzer(panicGenerator{marker: MarkerPersonality}, 0)

	var got models.UserProfile
	require.NotPanics(t, func() {
		got = a.AnalyzeUser(context.Background(), hikerRecord())
	})
	assert.Equal(t, defaultPersonalitySummary, got.PersonalitySummary)
	assert.Len(t, got.LifeIndicators, 3)
	assert.Len(t, got.SpendingIndicators, 2)
}

func TestGuard(t *testing.T) {
	got := guard("answer", func() int { return 7 }, func() int { panic("boom") })
	assert.Equal(t, 7, got)

	got = guard("answer", func() int { return 7 }, func() int { return 42 })
	assert.Equal(t, 42, got)
}

func TestProfileInvariantsAcrossReplies(t *testing.T) {
	generators := []TextGenerator{
		nil,
		NewStaticGenerator(hikerReplies()),
		NewStaticGenerator([]StaticReply{
			{Marker: MarkerInterests, Reply: "{}"},
			{Marker: MarkerActivities, Reply: "1. a\n2. b\n3. c\n4. d\n5. e\n6. f"},
			{Marker: MarkerHabits, Reply: "Habits: a, b, c, d\nHobby: "},
			{Marker: MarkerSpending, Reply: "[1, 2]"},
		}),
	}
	records := []models.RawUserRecord{
		hikerRecord(),
		{FullName: "Omar", Posts: []string{"travel travel travel travel travel travel travel"}},
		{Posts: []string{}},
	}

	for _, gen := range generators {
		a := NewProfileAnalyzer(gen, time.Second)
		for _, rec := range records {
			p := a.AnalyzeUser(context.Background(), rec)
			assert.Len(t, p.TopInterests.Shares, 3)
			assert.Equal(t, 100, p.TopInterests.Total())
			assert.LessOrEqual(t, len(p.KeyActivities), 5)
			assert.NotEmpty(t, p.TopHabits)
			assert.LessOrEqual(t, len(p.TopHabits), 2)
			assert.NotEmpty(t, p.TopHobby)
			assert.Len(t, p.LifeIndicators, 3)
			assert.Len(t, p.SpendingIndicators, 2)
			assert.Equal(t, len(rec.Posts), p.TotalPosts)
			assert.Contains(t, []string{models.TravelNone, models.TravelRare, models.TravelOccasional, models.TravelFrequent}, p.TravelFrequency)
		}
	}
}
