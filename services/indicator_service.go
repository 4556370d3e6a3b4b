package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/utils"
)

const (
	lifeIndicatorCount     = 3
	spendingIndicatorCount = 2
)

var spendingFailurePair = []string{
	"Discernible spending patterns in posts",
	"Visible financial behaviors",
}

// ClassifyTravel maps the number of travel-keyword mentions in posts to a
// frequency class.
func ClassifyTravel(posts []string) string {
	total := 0
	for _, post := range posts {
		total += utils.CountAll(utils.NormalizeText(post), travelKeywords)
	}

	switch {
	case total == 0:
		return models.TravelNone
	case total <= 2:
		return models.TravelRare
	case total <= 5:
		return models.TravelOccasional
	default:
		return models.TravelFrequent
	}
}

type categoryCount struct {
	name  string
	count int
}

// rankCounts sorts by count descending; ties keep declared order.
func rankCounts(counts []categoryCount) []categoryCount {
	ranked := append([]categoryCount(nil), counts...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	return ranked
}

// lifeIndicatorInput is what the life indicators classifier reads.
type lifeIndicatorInput struct {
	posts      []string
	activities []string
	habits     []string
	hobby      string
	interests  models.InterestDistribution
	job        string
}

// classifyLifeIndicators scores the lifestyle buckets and backfills from the
// other profile fields until exactly three phrases exist.
func classifyLifeIndicators(in lifeIndicatorInput) []string {
	texts := make([]string, 0, len(in.posts)+len(in.activities))
	for _, s := range in.posts {
		texts = append(texts, utils.NormalizeText(s))
	}
	for _, s := range in.activities {
		texts = append(texts, utils.NormalizeText(s))
	}

	scores := make([]categoryCount, len(lifestyleBuckets))
	for i, b := range lifestyleBuckets {
		scores[i].name = b.Name
		for _, t := range texts {
			scores[i].count += utils.CountAll(t, b.Keywords)
		}
	}

	phrases := lo.SliceToMap(lifestyleBuckets, func(b LifestyleBucket) (string, string) {
		return b.Name, b.Phrase
	})

	indicators := make([]string, 0, lifeIndicatorCount)
	for _, s := range rankCounts(scores) {
		if len(indicators) == lifeIndicatorCount || s.count == 0 {
			break
		}
		indicators = append(indicators, phrases[s.name])
	}

	add := func(phrase string) {
		if len(indicators) < lifeIndicatorCount && strings.TrimSpace(phrase) != "" {
			indicators = append(indicators, phrase)
		}
	}

	for _, habit := range lo.Slice(cleanList(in.habits), 0, 2) {
		add("Maintains " + habit)
	}
	for _, act := range lo.Slice(cleanList(in.activities), 0, 2) {
		head, _, _ := strings.Cut(act, ".")
		if head = strings.TrimSpace(head); head != "" {
			add("Engages in " + strings.ToLower(head))
		}
	}
	if isEvidence(in.hobby) {
		add("Enjoys " + strings.TrimSpace(in.hobby))
	}
	if in.interests.Source != models.InterestFromDefault {
		labels := lo.Filter(in.interests.Shares, func(s models.InterestShare, _ int) bool {
			return s.Percentage > 0 && strings.TrimSpace(s.Interest) != ""
		})
		if len(labels) > 0 {
			add("Interested in " + labels[0].Interest)
		}
		if len(labels) > 1 {
			add("Also likes " + labels[1].Interest)
		}
	}
	if models.IsKnown(in.job) {
		add("Works as " + strings.TrimSpace(in.job))
	}

	for len(indicators) < lifeIndicatorCount {
		indicators = append(indicators, genericLifestylePhrases[len(indicators)%len(genericLifestylePhrases)])
	}
	return indicators
}

// spendingCounts counts each spending category's keywords across posts.
func spendingCounts(posts []string) []categoryCount {
	counts := make([]categoryCount, len(spendingCategories))
	for i, c := range spendingCategories {
		counts[i].name = c.Name
	}
	for _, post := range posts {
		text := utils.NormalizeText(post)
		for i, c := range spendingCategories {
			counts[i].count += utils.CountAll(text, c.Keywords)
		}
	}
	return counts
}

// extractSpendingIndicators always returns exactly two phrases.
func (a *ProfileAnalyzer) extractSpendingIndicators(ctx context.Context, ec *extractionContext) []string {
	counts := spendingCounts(ec.posts)
	prompt := buildSpendingPrompt(ec.job, ec.activities, ec.habits, counts)

	reply, err := a.generate(ctx, "spending_indicators", prompt)
	if err != nil {
		return append([]string(nil), spendingFailurePair...)
	}
	return spendingFromReply(reply, counts, ec.job)
}

// spendingFromReply prefers a non-empty parsed list, else the ranked
// categories, then pads to two entries.
func spendingFromReply(reply string, counts []categoryCount, job string) []string {
	parsed := utils.SafeParseJSON[[]string](utils.CleanModelReply(reply), nil)
	indicators := utils.DeduplicateSlice(parsed)

	if len(indicators) == 0 {
		logger.Warn("spending reply unusable, using category counts", "field", "spending_indicators", "reply", utils.Preview(reply, 120))
		ranked := rankCounts(counts)
		if len(ranked) > 0 && ranked[0].count > 0 {
			indicators = append(indicators, fmt.Sprintf("Spends on %s activities", ranked[0].name))
			if len(ranked) > 1 && ranked[1].count > 0 {
				indicators = append(indicators, fmt.Sprintf("Secondary %s expenditures", ranked[1].name))
			}
		}
	}

	padding := []string{"Visible lifestyle expenditures", "Discernible spending patterns in posts"}
	if models.IsKnown(job) {
		padding = append([]string{"Career-related spending"}, padding...)
	}
	for _, p := range padding {
		if len(indicators) >= spendingIndicatorCount {
			break
		}
		if !lo.Contains(indicators, p) {
			indicators = append(indicators, p)
		}
	}
	return lo.Slice(indicators, 0, spendingIndicatorCount)
}

// cleanList trims entries and drops blanks.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isEvidence(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != models.NoneValue
}
