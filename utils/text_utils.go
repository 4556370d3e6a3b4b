package utils

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	thinkingTagRe = regexp.MustCompile(`(?is)<(think|thinking|reasoning)>.*?</(think|thinking|reasoning)>`)
	multiNewline  = regexp.MustCompile(`\n{3,}`)
)

// JoinPosts concatenates posts with a single space.
func JoinPosts(posts []string) string {
	return strings.Join(posts, " ")
}

// NormalizeText composes the text to NFC and lower-cases it so keyword
// counts do not depend on how the source encoded accents or Arabic marks.
func NormalizeText(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// CountOccurrences counts non-overlapping occurrences of term in text.
func CountOccurrences(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(text, term)
}

// CountAll sums the occurrences of every term in text.
func CountAll(text string, terms []string) int {
	total := 0
	for _, term := range terms {
		total += CountOccurrences(text, term)
	}
	return total
}

// SafeParseJSON decodes text as JSON into a T. Any failure returns def.
func SafeParseJSON[T any](text string, def T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			result = def
		}
	}()

	var v T
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &v); err != nil {
		return def
	}
	return v
}

// StripCodeFences removes ``` / ```json fence markers around a model reply.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	for {
		trimmed := text
		if strings.HasPrefix(trimmed, "```") {
			trimmed = strings.TrimPrefix(trimmed, "```")
			// drop an info string such as "json" on the opening fence
			if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 && !strings.ContainsAny(trimmed[:nl], "[{,") {
				trimmed = trimmed[nl+1:]
			} else {
				trimmed = strings.TrimPrefix(trimmed, "json")
			}
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == text {
			return text
		}
		text = trimmed
	}
}

// StripThinkingTags removes <think>, <thinking> and <reasoning> blocks.
func StripThinkingTags(content string) string {
	content = thinkingTagRe.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)
	return multiNewline.ReplaceAllString(content, "\n\n")
}

// CleanModelReply applies the reply cleanups every parser relies on.
func CleanModelReply(reply string) string {
	return StripCodeFences(StripThinkingTags(reply))
}

// SplitFullName splits on whitespace into the first token and the rest.
func SplitFullName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Unknown" {
		return "Unknown", ""
	}
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " ")
	}
	return name, ""
}

// SplitAndTrim splits s on sep, trims every part and drops blanks.
func SplitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// DeduplicateSlice trims values and removes blanks and duplicates, keeping order.
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// Preview shortens s for log output.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
