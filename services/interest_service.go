package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/utils"
)

const interestCount = 3

var errInvalidShares = errors.New("interest shares violate distribution rules")

// interestParser turns a model reply into three shares, or reports failure.
type interestParser func(reply string) ([]models.InterestShare, bool)

// interestParsers run in order; the first success wins.
var interestParsers = []interestParser{
	parseStructuredInterests,
	parseFlatInterests,
}

// extractInterests never fails: model output, keyword matches or the static
// default, in that order.
func (a *ProfileAnalyzer) extractInterests(ctx context.Context, ec *extractionContext) models.InterestDistribution {
	prompt := buildInterestPrompt(ec.job, ec.education, ec.postsText)
	reply, err := a.generate(ctx, "top_interests", prompt)
	if err == nil {
		if shares, ok := parseInterestReply(reply); ok {
			return models.InterestDistribution{Shares: shares, Source: models.InterestFromModel}
		}
		logger.Warn("interest reply unusable, using keyword fallback", "field", "top_interests", "reply", utils.Preview(reply, 120))
	}

	if shares, ok := keywordInterests(ec.postsText, ec.job, ec.education); ok {
		return models.InterestDistribution{Shares: shares, Source: models.InterestFromKeyword}
	}
	return defaultInterestDistribution()
}

func defaultInterestDistribution() models.InterestDistribution {
	return models.InterestDistribution{Shares: DefaultInterests(), Source: models.InterestFromDefault}
}

// parseInterestReply runs the parser cascade over a raw model reply.
func parseInterestReply(reply string) ([]models.InterestShare, bool) {
	for _, parse := range interestParsers {
		if shares, ok := parse(reply); ok {
			return shares, true
		}
	}
	return nil, false
}

// parseStructuredInterests accepts a JSON list of objects carrying a
// "category" (or "interest") label and an integer "percentage".
func parseStructuredInterests(reply string) ([]models.InterestShare, bool) {
	text := utils.CleanModelReply(reply)
	if !strings.HasPrefix(text, "[") {
		return nil, false
	}

	items := utils.SafeParseJSON[[]map[string]any](text, nil)
	if len(items) < interestCount {
		return nil, false
	}

	shares := make([]models.InterestShare, 0, interestCount)
	for _, item := range items[:interestCount] {
		label, ok := stringField(item, "category", "interest")
		if !ok {
			return nil, false
		}
		pct, ok := intField(item["percentage"])
		if !ok {
			return nil, false
		}
		shares = append(shares, models.InterestShare{Interest: label, Percentage: pct})
	}

	shares, err := validateShares(shares)
	if err != nil {
		return nil, false
	}
	return shares, true
}

// parseFlatInterests accepts "cat1,pct1,cat2,pct2,cat3,pct3".
func parseFlatInterests(reply string) ([]models.InterestShare, bool) {
	text := utils.CleanModelReply(reply)
	tokens := lo.Map(strings.Split(text, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	if len(tokens) < 2*interestCount {
		return nil, false
	}

	shares := make([]models.InterestShare, 0, interestCount)
	for i := 0; i < interestCount; i++ {
		pct, err := strconv.Atoi(tokens[2*i+1])
		if err != nil {
			return nil, false
		}
		shares = append(shares, models.InterestShare{Interest: tokens[2*i], Percentage: pct})
	}

	shares, err := validateShares(shares)
	if err != nil {
		return nil, false
	}
	return shares, true
}

// validateShares canonicalizes labels and enforces the distribution rules:
// lexicon labels, no duplicates, weights within 0..100, sum of exactly 100.
func validateShares(shares []models.InterestShare) ([]models.InterestShare, error) {
	if len(shares) != interestCount {
		return nil, errInvalidShares
	}

	out := make([]models.InterestShare, len(shares))
	for i, s := range shares {
		label, ok := canonicalInterest(s.Interest)
		if !ok || s.Percentage < 0 || s.Percentage > 100 {
			return nil, errInvalidShares
		}
		out[i] = models.InterestShare{Interest: label, Percentage: s.Percentage}
	}

	labels := lo.Map(out, func(s models.InterestShare, _ int) string { return s.Interest })
	if len(lo.Uniq(labels)) != len(labels) {
		return nil, errInvalidShares
	}
	if lo.SumBy(out, func(s models.InterestShare) int { return s.Percentage }) != 100 {
		return nil, errInvalidShares
	}
	return out, nil
}

// keywordInterests matches lexicon labels against posts, job and education.
// Matches split 100 evenly with the remainder on the last match; the result
// is padded to three entries with unused default labels at weight 0.
func keywordInterests(postsText, job, education string) ([]models.InterestShare, bool) {
	haystacks := []string{
		utils.NormalizeText(postsText),
		utils.NormalizeText(job),
		utils.NormalizeText(education),
	}

	found := make([]string, 0, interestCount)
	for _, label := range interestCategories {
		if lo.SomeBy(haystacks, func(h string) bool { return strings.Contains(h, label) }) {
			found = append(found, label)
			if len(found) == interestCount {
				break
			}
		}
	}
	if len(found) == 0 {
		return nil, false
	}

	base := 100 / len(found)
	shares := make([]models.InterestShare, 0, interestCount)
	for i, label := range found {
		pct := base
		if i == len(found)-1 {
			pct = 100 - base*(len(found)-1)
		}
		shares = append(shares, models.InterestShare{Interest: label, Percentage: pct})
	}

	for _, d := range defaultInterests {
		if len(shares) == interestCount {
			break
		}
		if !lo.Contains(found, d.Interest) {
			shares = append(shares, models.InterestShare{Interest: d.Interest, Percentage: 0})
		}
	}
	return shares, true
}

func stringField(item map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := item[k].(string); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// intField accepts a JSON number with no fractional part or a numeric string.
func intField(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), "%")))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
