package services

import (
	"fmt"
	"strings"
)

// Opening lines of each prompt. StaticGenerator rules and tests key on them.
const (
	MarkerInterests   = "extract the top 3 most prominent interests"
	MarkerPersonality = "Create a personality summary"
	MarkerActivities  = "Extract the top 5 most significant activities"
	MarkerHabits      = "identify habits and hobbies"
	MarkerSpending    = "Analyze spending behaviors"
)

// buildInterestPrompt asks for three lexicon categories with percentages.
func buildInterestPrompt(job, education, postsText string) string {
	return fmt.Sprintf(`Analyze the following user profile and %s with percentage distribution.
The content may be in English, Arabic, or mixed.

JOB: %s
EDUCATION: %s

POSTS/ACTIVITIES (may contain Arabic):
%s

Available interest categories:
%s

Instructions:
1. Analyze posts in both English and Arabic
2. Identify the 3 most prominent interests
3. Assign a whole-number percentage to each; the three must sum to exactly 100
4. Use only the interest categories from the provided list
5. Answer with ONLY one of these forms:
   [{"category": "art", "percentage": 50}, {"category": "technology", "percentage": 30}, {"category": "business", "percentage": 20}]
   art,50,technology,30,business,20`,
		MarkerInterests, job, education, postsText, strings.Join(interestCategories, ", "))
}

func buildPersonalityPrompt(age, job, education, maritalStatus, postsText string) string {
	return fmt.Sprintf(`%s for this user who may post in English or Arabic:

BASIC INFO:
- Age: %s
- Job: %s
- Education: %s
- Marital Status: %s

POSTS/ACTIVITIES (may contain Arabic):
%s

Instructions:
1. Analyze content in both English and Arabic
2. Write a 2-3 sentence summary in English
3. Highlight cultural aspects if relevant
4. Focus on professional and personal traits

Generate the summary:`,
		MarkerPersonality, age, job, education, maritalStatus, postsText)
}

func buildActivitiesPrompt(postsText string) string {
	return fmt.Sprintf(`%s from these posts:

POSTS:
%s

Instructions:
1. Identify concrete activities, events, or experiences mentioned
2. Focus on specific actions rather than general statements
3. Include both professional and personal activities
4. Keep each activity concise but descriptive
5. Return a numbered list, one activity per line, at most 5 lines

Example format:
1. Attended a technology conference on AI and machine learning
2. Completed a cooking class focusing on Mediterranean cuisine`,
		MarkerActivities, postsText)
}

func buildHabitsPrompt(postsText string) string {
	return fmt.Sprintf(`Analyze the following posts to %s:

POSTS (may contain Arabic):
%s

Instructions:
1. Identify the 2 most frequent habits (regular behaviors)
2. Identify the 1 most prominent hobby (leisure activity)
3. Use English terms and be specific (e.g. "night reading", not "reading")

Answer in exactly this format:
habits: morning jogging, daily journaling
hobby: photography`,
		MarkerHabits, postsText)
}

func buildSpendingPrompt(job string, activities, habits []string, counts []categoryCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s: %d", c.name, c.count))
	}
	return fmt.Sprintf(`%s from:

JOB: %s
ACTIVITIES: %s
HABITS: %s
SPENDING CATEGORY COUNTS: %s

Generate 2 spending indicators covering:
1. The primary expenditure category (highest count)
2. A secondary spending pattern
Include frequency descriptors when possible.

Answer with ONLY a JSON list of 2 strings, for example:
["Regular investments in professional development", "Occasional luxury leisure purchases"]`,
		MarkerSpending, job, strings.Join(activities, "; "), strings.Join(habits, ", "), strings.Join(parts, ", "))
}
