package services

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/mayagamaleldin/graduationproject/utils"
)

const (
	maxActivities = 5
	maxHabits     = 2
)

var (
	habitsMarker = regexp.MustCompile(`(?i)habits:`)
	hobbyMarker  = regexp.MustCompile(`(?i)hobby:`)
)

// extractKeyActivities asks for a numbered list. Blank posts skip the model.
func (a *ProfileAnalyzer) extractKeyActivities(ctx context.Context, ec *extractionContext) []string {
	if strings.TrimSpace(ec.postsText) == "" {
		return []string{}
	}

	reply, err := a.generate(ctx, "key_activities", buildActivitiesPrompt(ec.postsText))
	if err != nil {
		return []string{}
	}
	return parseActivities(reply)
}

// parseActivities keeps numbered lines, drops the numbering and caps the list.
func parseActivities(reply string) []string {
	activities := make([]string, 0, maxActivities)
	for _, line := range strings.Split(utils.StripThinkingTags(reply), "\n") {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		if line == "" || !numberedPrefix(line) {
			continue
		}
		if _, rest, found := strings.Cut(line, "."); found {
			line = rest
		}
		if activity := strings.TrimSpace(line); activity != "" {
			activities = append(activities, activity)
		}
		if len(activities) == maxActivities {
			break
		}
	}
	return activities
}

// numberedPrefix reports whether one of the first three characters is a digit.
func numberedPrefix(line string) bool {
	for i, r := range []rune(line) {
		if i == 3 {
			break
		}
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// extractHabitsHobby returns up to two habits and one hobby.
func (a *ProfileAnalyzer) extractHabitsHobby(ctx context.Context, ec *extractionContext) ([]string, string) {
	reply, err := a.generate(ctx, "habits_hobby", buildHabitsPrompt(ec.postsText))
	if err != nil {
		return []string{}, ""
	}
	return parseHabitsHobby(reply)
}

// parseHabitsHobby reads "habits: a, b / hobby: c", then a two-line
// "label: value" reply, and otherwise gives up with ([], "").
func parseHabitsHobby(reply string) ([]string, string) {
	text := strings.TrimSpace(utils.StripThinkingTags(reply))

	habitsLoc := habitsMarker.FindStringIndex(text)
	hobbyLoc := hobbyMarker.FindStringIndex(text)
	if habitsLoc != nil && hobbyLoc != nil {
		segment := text[habitsLoc[1]:]
		if hobbyLoc[0] > habitsLoc[0] {
			segment = text[habitsLoc[1]:hobbyLoc[0]]
		} else {
			segment = firstLine(segment)
		}
		hobby := strings.TrimSpace(firstLine(strings.TrimSpace(text[hobbyLoc[1]:])))
		return splitHabits(segment), hobby
	}

	lines := strings.Split(text, "\n")
	if len(lines) >= 2 {
		return splitHabits(afterLastColon(lines[0])), strings.TrimSpace(afterLastColon(lines[1]))
	}
	return []string{}, ""
}

func splitHabits(segment string) []string {
	habits := utils.DeduplicateSlice(utils.SplitAndTrim(segment, ","))
	return lo.Slice(habits, 0, maxHabits)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func afterLastColon(s string) string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
