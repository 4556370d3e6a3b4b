package services

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mayagamaleldin/graduationproject/models"
)

// exportedProfile is the row layout of the JSON results file.
type exportedProfile struct {
	FirstName          string                 `json:"first_name"`
	LastName           string                 `json:"last_name"`
	Age                string                 `json:"age"`
	Gender             string                 `json:"gender"`
	MaritalStatus      string                 `json:"marital_status"`
	Education          string                 `json:"education"`
	Job                string                 `json:"job"`
	Location           string                 `json:"location"`
	TopInterests       []models.InterestShare `json:"top_interests"`
	PersonalitySummary string                 `json:"personality_summary"`
	KeyActivities      []string               `json:"key_activities"`
	TotalPosts         int                    `json:"total_posts"`
	TopHabits          []string               `json:"top_habits"`
	TopHobby           string                 `json:"top_hobby"`
	TravelIndicators   string                 `json:"travel_indicators"`
	LifeIndicators     []string               `json:"life_indicators"`
	SpendingIndicators []string               `json:"spending_indicators"`
}

func toExported(p models.UserProfile) exportedProfile {
	return exportedProfile{
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Age:                p.Age,
		Gender:             p.Gender,
		MaritalStatus:      p.MaritalStatus,
		Education:          p.Education,
		Job:                p.Job,
		Location:           p.Location,
		TopInterests:       p.TopInterests.Shares,
		PersonalitySummary: p.PersonalitySummary,
		KeyActivities:      p.KeyActivities,
		TotalPosts:         p.TotalPosts,
		TopHabits:          p.TopHabits,
		TopHobby:           p.TopHobby,
		TravelIndicators:   p.TravelFrequency,
		LifeIndicators:     p.LifeIndicators,
		SpendingIndicators: p.SpendingIndicators,
	}
}

// WriteResults encodes profiles as an indented JSON array.
func WriteResults(w io.Writer, profiles []models.UserProfile) error {
	rows := make([]exportedProfile, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, toExported(p))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// SaveResults writes profiles to path as UTF-8 JSON.
func SaveResults(path string, profiles []models.UserProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	if err := WriteResults(f, profiles); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close results file: %w", err)
	}
	return nil
}

// PrintUserProfile renders one profile as a console report.
func PrintUserProfile(w io.Writer, p models.UserProfile) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " USER PROFILE: %s\n", strings.TrimSpace(p.FirstName+" "+p.LastName))
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, " BASIC INFORMATION:")
	fmt.Fprintf(w, "   • First Name: %s\n", p.FirstName)
	fmt.Fprintf(w, "   • Last Name: %s\n", p.LastName)
	fmt.Fprintf(w, "   • Age: %s\n", p.Age)
	fmt.Fprintf(w, "   • Gender: %s\n", p.Gender)
	fmt.Fprintf(w, "   • Marital Status: %s\n", p.MaritalStatus)
	fmt.Fprintf(w, "   • Education: %s\n", p.Education)
	fmt.Fprintf(w, "   • Job: %s\n", p.Job)
	fmt.Fprintf(w, "   • Location: %s\n", p.Location)

	fmt.Fprintln(w, "\n INTERESTS:")
	for _, s := range p.TopInterests.Shares {
		fmt.Fprintf(w, "   • %s: %d%%\n", s.Interest, s.Percentage)
	}

	fmt.Fprintln(w, "\n HABITS & HOBBIES:")
	fmt.Fprintf(w, "   • Top 2 Habits: %s\n", strings.Join(p.TopHabits, ", "))
	fmt.Fprintf(w, "   • Top Hobby: %s\n", p.TopHobby)

	fmt.Fprintln(w, "\n TRAVEL FREQUENCY:")
	fmt.Fprintf(w, "   • %s\n", p.TravelFrequency)

	printList(w, "LIFE INDICATORS", p.LifeIndicators)
	printList(w, "SPENDING INDICATORS", p.SpendingIndicators)

	fmt.Fprintln(w, "\n PERSONALITY SUMMARY:")
	fmt.Fprintf(w, "   %s\n", p.PersonalitySummary)

	fmt.Fprintln(w, "\n KEY ACTIVITIES FROM POSTS:")
	for i, a := range p.KeyActivities {
		fmt.Fprintf(w, "   %d. %s\n", i+1, a)
	}

	fmt.Fprintf(w, "\n TOTAL POSTS ANALYZED: %d\n\n", p.TotalPosts)
}

// PrintAllProfiles renders every profile in order.
func PrintAllProfiles(w io.Writer, profiles []models.UserProfile) {
	for _, p := range profiles {
		PrintUserProfile(w, p)
	}
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "\n %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}
