package services

import (
	"strings"

	"github.com/mayagamaleldin/graduationproject/models"
)

// LifestyleBucket groups the keywords that evidence one lifestyle trait.
type LifestyleBucket struct {
	Name     string
	Keywords []string
	Phrase   string
}

// SpendingCategory groups the keywords that evidence one kind of spending.
type SpendingCategory struct {
	Name     string
	Keywords []string
}

// Lexicon values are declared once and never written. Accessors hand out
// copies so callers cannot mutate the shared tables.
var (
	interestCategories = []string{
		"technology", "education", "fashion", "food", "sports", "traveling",
		"music", "health", "finance", "automotive", "agriculture", "art",
		"entertainment", "fitness", "gaming", "photography", "reading",
		"cooking", "nature", "science", "business", "politics", "religion",
		"volunteer work", "family", "social activities",
	}

	defaultInterests = []models.InterestShare{
		{Interest: "art", Percentage: 34},
		{Interest: "technology", Percentage: 33},
		{Interest: "business", Percentage: 33},
	}

	travelKeywords = []string{
		"travel", "trip", "visit", "go to", "vacation",
		"journey", "tour", "destination", "flight", "hotel",
	}

	lifestyleBuckets = []LifestyleBucket{
		{Name: "morning", Keywords: []string{"morning", "wake up", "breakfast"}, Phrase: "Maintains morning routines"},
		{Name: "evening", Keywords: []string{"evening", "night", "dinner"}, Phrase: "Evening relaxation activities"},
		{Name: "work", Keywords: []string{"work", "job", "office", "career"}, Phrase: "Dedicated work engagement"},
		{Name: "fitness", Keywords: []string{"exercise", "gym", "yoga", "run"}, Phrase: "Regular fitness practice"},
		{Name: "social", Keywords: []string{"friend", "family", "social", "meet"}, Phrase: "Active social interactions"},
		{Name: "leisure", Keywords: []string{"read", "movie", "game", "hobby"}, Phrase: "Enjoyable leisure time"},
		{Name: "health", Keywords: []string{"health", "sleep", "meal", "diet"}, Phrase: "Health-conscious lifestyle"},
	}

	genericLifestylePhrases = []string{
		"Maintains a balanced lifestyle",
		"Engages in personal development",
		"Values work-life balance",
	}

	spendingCategories = []SpendingCategory{
		{Name: "professional", Keywords: []string{"buy", "purchase", "tool", "equipment", "conference"}},
		{Name: "leisure", Keywords: []string{"dine", "movie", "concert", "hobby", "game"}},
		{Name: "education", Keywords: []string{"course", "book", "learn", "class", "workshop"}},
		{Name: "travel", Keywords: []string{"trip", "hotel", "flight", "vacation", "resort"}},
	}
)

// DefaultInterests returns the static interest distribution.
func DefaultInterests() []models.InterestShare {
	return append([]models.InterestShare(nil), defaultInterests...)
}

// GenericLifestylePhrases returns the phrases used to pad life indicators.
func GenericLifestylePhrases() []string {
	return append([]string(nil), genericLifestylePhrases...)
}

// canonicalInterest maps a model-supplied label onto its lexicon spelling.
func canonicalInterest(label string) (string, bool) {
	label = strings.ToLower(strings.Join(strings.Fields(label), " "))
	for _, c := range interestCategories {
		if c == label {
			return c, true
		}
	}
	return "", false
}
