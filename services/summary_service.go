package services

import (
	"context"
	"strings"

	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/utils"
)

// defaultPersonalitySummary stands in when the model cannot answer.
const defaultPersonalitySummary = "Shows a balanced personality with diverse interests."

// generatePersonalitySummary returns the model's summary as-is, trimmed.
func (a *ProfileAnalyzer) generatePersonalitySummary(ctx context.Context, ec *extractionContext) string {
	prompt := buildPersonalityPrompt(ec.age, ec.job, ec.education, ec.maritalStatus, ec.postsText)
	reply, err := a.generate(ctx, "personality_summary", prompt)
	if err != nil {
		return defaultPersonalitySummary
	}

	summary := strings.TrimSpace(utils.StripThinkingTags(reply))
	if summary == "" {
		logger.Warn("empty personality summary, using default", "field", "personality_summary")
		return defaultPersonalitySummary
	}
	return summary
}
