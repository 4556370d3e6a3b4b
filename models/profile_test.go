package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawUserRecordAcceptsLooseTypes(t *testing.T) {
	data := []byte(`{"FullName":"Omar Khaled","Age":31,"Gender":null,"Job":" Engineer ","Posts":["hi"]}`)

	var rec RawUserRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	assert.Equal(t, "Omar Khaled", rec.DisplayName())
	assert.Equal(t, "31", rec.AgeOrUnknown())
	assert.Equal(t, UnknownValue, rec.GenderOrUnknown())
	assert.Equal(t, "Engineer", rec.JobOrUnknown())
	assert.Equal(t, UnknownValue, rec.LocationOrUnknown())
}

func TestDisplayNamePrefersUserName(t *testing.T) {
	rec := RawUserRecord{UserName: "sara_m", FullName: "Sara Mahmoud"}
	assert.Equal(t, "sara_m", rec.DisplayName())

	assert.Equal(t, UnknownValue, RawUserRecord{}.DisplayName())
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("Nurse"))
	assert.False(t, IsKnown(""))
	assert.False(t, IsKnown("  "))
	assert.False(t, IsKnown(UnknownValue))
}

func TestInterestDistributionJSONHidesSource(t *testing.T) {
	d := InterestDistribution{
		Shares: []InterestShare{{"art", 34}, {"technology", 33}, {"business", 33}},
		Source: InterestFromDefault,
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"interest":"art","percentage":34},{"interest":"technology","percentage":33},{"interest":"business","percentage":33}]`, string(b))
	assert.Equal(t, 100, d.Total())
	assert.Equal(t, []string{"art", "technology", "business"}, d.Labels())
}

func TestProfileRecordFlattensInterests(t *testing.T) {
	p := UserProfile{
		FirstName: "Lina",
		TopInterests: InterestDistribution{Shares: []InterestShare{
			{"photography", 50}, {"traveling", 30}, {"fitness", 20},
		}},
		KeyActivities:      []string{"Hiked Wadi Rum"},
		TopHabits:          []string{NoneValue},
		TopHobby:           NoneValue,
		TravelFrequency:    TravelRare,
		LifeIndicators:     []string{"a", "b", "c"},
		SpendingIndicators: []string{"x", "y"},
		TotalPosts:         3,
	}

	rec := NewProfileRecord(p, "run-1", "hash-1")
	assert.Equal(t, "photography", rec.FirstInterest)
	assert.Equal(t, 30, rec.SecondInterestPercentage)
	assert.Equal(t, "fitness", rec.ThirdInterest)
	assert.Equal(t, `["Hiked Wadi Rum"]`, rec.KeyActivities)
	assert.Equal(t, TravelRare, rec.TravelIndicators)

	back := rec.Profile()
	assert.Equal(t, p.TopInterests.Shares, back.TopInterests.Shares)
	assert.Equal(t, p.LifeIndicators, back.LifeIndicators)
	assert.Equal(t, p.TopHabits, back.TopHabits)
}

func TestProfileRecordNilListsBecomeEmptyArrays(t *testing.T) {
	rec := NewProfileRecord(UserProfile{}, "", "")
	assert.Equal(t, "[]", rec.KeyActivities)
	assert.Equal(t, []string{}, rec.Profile().KeyActivities)
}
