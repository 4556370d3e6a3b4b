package models

import (
	"encoding/json"
	"time"
)

// Travel frequency classes.
const (
	TravelNone       = "no_travel"
	TravelRare       = "rare"
	TravelOccasional = "occasional"
	TravelFrequent   = "frequent"
)

// NoneValue is the sentinel for habits and hobby when nothing was found.
const NoneValue = "none"

// InterestShare is one ranked interest with its integer percentage.
type InterestShare struct {
	Interest   string `json:"interest"`
	Percentage int    `json:"percentage"`
}

// InterestSource records which path produced a distribution.
type InterestSource string

const (
	InterestFromModel   InterestSource = "model"
	InterestFromKeyword InterestSource = "keyword"
	InterestFromDefault InterestSource = "default"
)

// InterestDistribution holds exactly three shares summing to 100.
type InterestDistribution struct {
	Shares []InterestShare
	Source InterestSource
}

// Total returns the sum of the percentages.
func (d InterestDistribution) Total() int {
	total := 0
	for _, s := range d.Shares {
		total += s.Percentage
	}
	return total
}

// Labels returns the interest labels in rank order.
func (d InterestDistribution) Labels() []string {
	labels := make([]string, 0, len(d.Shares))
	for _, s := range d.Shares {
		labels = append(labels, s.Interest)
	}
	return labels
}

// MarshalJSON renders only the shares; the source tag is internal.
func (d InterestDistribution) MarshalJSON() ([]byte, error) {
	if d.Shares == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Shares)
}

func (d *InterestDistribution) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.Shares)
}

// UserProfile is the assembled, read-only analysis of one user.
type UserProfile struct {
	FirstName          string               `json:"first_name"`
	LastName           string               `json:"last_name"`
	Age                string               `json:"age"`
	Gender             string               `json:"gender"`
	MaritalStatus      string               `json:"marital_status"`
	Education          string               `json:"education"`
	Job                string               `json:"job"`
	Location           string               `json:"location"`
	TopInterests       InterestDistribution `json:"top_interests"`
	PersonalitySummary string               `json:"personality_summary"`
	KeyActivities      []string             `json:"key_activities"`
	TotalPosts         int                  `json:"total_posts"`
	TopHabits          []string             `json:"top_habits"`
	TopHobby           string               `json:"top_hobby"`
	TravelFrequency    string               `json:"travel_frequency"`
	LifeIndicators     []string             `json:"life_indicators"`
	SpendingIndicators []string             `json:"spending_indicators"`
}

// ProfileRecord is the flat row persisted for one profile.
type ProfileRecord struct {
	ID                       int64     `db:"id" json:"id"`
	RunID                    string    `db:"run_id" json:"run_id"`
	SourceHash               string    `db:"source_hash" json:"source_hash"`
	FirstName                string    `db:"first_name" json:"first_name"`
	LastName                 string    `db:"last_name" json:"last_name"`
	Age                      string    `db:"age" json:"age"`
	Gender                   string    `db:"gender" json:"gender"`
	MaritalStatus            string    `db:"marital_status" json:"marital_status"`
	Education                string    `db:"education" json:"education"`
	Job                      string    `db:"job" json:"job"`
	Location                 string    `db:"location" json:"location"`
	FirstInterest            string    `db:"first_interest" json:"first_interest"`
	FirstInterestPercentage  int       `db:"first_interest_percentage" json:"first_interest_percentage"`
	SecondInterest           string    `db:"second_interest" json:"second_interest"`
	SecondInterestPercentage int       `db:"second_interest_percentage" json:"second_interest_percentage"`
	ThirdInterest            string    `db:"third_interest" json:"third_interest"`
	ThirdInterestPercentage  int       `db:"third_interest_percentage" json:"third_interest_percentage"`
	PersonalitySummary       string    `db:"personality_summary" json:"personality_summary"`
	KeyActivities            string    `db:"key_activities" json:"key_activities"` // JSON array
	TotalPosts               int       `db:"total_posts" json:"total_posts"`
	TopHabits                string    `db:"top_habits" json:"top_habits"` // JSON array
	TopHobby                 string    `db:"top_hobby" json:"top_hobby"`
	TravelIndicators         string    `db:"travel_indicators" json:"travel_indicators"`
	LifeIndicators           string    `db:"life_indicators" json:"life_indicators"`         // JSON array
	SpendingIndicators       string    `db:"spending_indicators" json:"spending_indicators"` // JSON array
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
}

// NewProfileRecord flattens p into its persisted form.
func NewProfileRecord(p UserProfile, runID, sourceHash string) ProfileRecord {
	rec := ProfileRecord{
		RunID:              runID,
		SourceHash:         sourceHash,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Age:                p.Age,
		Gender:             p.Gender,
		MaritalStatus:      p.MaritalStatus,
		Education:          p.Education,
		Job:                p.Job,
		Location:           p.Location,
		PersonalitySummary: p.PersonalitySummary,
		KeyActivities:      jsonList(p.KeyActivities),
		TotalPosts:         p.TotalPosts,
		TopHabits:          jsonList(p.TopHabits),
		TopHobby:           p.TopHobby,
		TravelIndicators:   p.TravelFrequency,
		LifeIndicators:     jsonList(p.LifeIndicators),
		SpendingIndicators: jsonList(p.SpendingIndicators),
	}

	shares := p.TopInterests.Shares
	if len(shares) > 0 {
		rec.FirstInterest, rec.FirstInterestPercentage = shares[0].Interest, shares[0].Percentage
	}
	if len(shares) > 1 {
		rec.SecondInterest, rec.SecondInterestPercentage = shares[1].Interest, shares[1].Percentage
	}
	if len(shares) > 2 {
		rec.ThirdInterest, rec.ThirdInterestPercentage = shares[2].Interest, shares[2].Percentage
	}
	return rec
}

// Profile rebuilds the UserProfile view of a stored row.
func (r ProfileRecord) Profile() UserProfile {
	p := UserProfile{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Age:                r.Age,
		Gender:             r.Gender,
		MaritalStatus:      r.MaritalStatus,
		Education:          r.Education,
		Job:                r.Job,
		Location:           r.Location,
		PersonalitySummary: r.PersonalitySummary,
		KeyActivities:      parseList(r.KeyActivities),
		TotalPosts:         r.TotalPosts,
		TopHabits:          parseList(r.TopHabits),
		TopHobby:           r.TopHobby,
		TravelFrequency:    r.TravelIndicators,
		LifeIndicators:     parseList(r.LifeIndicators),
		SpendingIndicators: parseList(r.SpendingIndicators),
	}
	p.TopInterests.Shares = []InterestShare{
		{Interest: r.FirstInterest, Percentage: r.FirstInterestPercentage},
		{Interest: r.SecondInterest, Percentage: r.SecondInterestPercentage},
		{Interest: r.ThirdInterest, Percentage: r.ThirdInterestPercentage},
	}
	return p
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func parseList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
