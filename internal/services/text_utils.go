package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nonMeaningfulPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	htmlTagPattern       = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	controlCharPattern   = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\p{L}\p{N}_-]+`)
)

var suggestionPrefixes = []string{"consider", "add", "include", "improve", "enhance", "try", "focus"}

type TextStatistics struct {
	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
	SentenceCount  int `json:"sentence_count"`
}

type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ValidateTextInput rejects text shorter than minLength characters after
// trimming, or text where punctuation makes up more than 30% of that minimum.
func ValidateTextInput(text string, minLength int) bool {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" || utf8.RuneCountInString(cleaned) < minLength {
		return false
	}

	meaningful := nonMeaningfulPattern.ReplaceAllString(cleaned, "")
	return float64(utf8.RuneCountInString(meaningful)) >= float64(minLength)*0.7
}

func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = controlCharPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func ExtractContactInfo(text string) ContactInfo {
	return ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		LinkedIn: linkedInPattern.FindString(text),
	}
}

// KeywordDensity reports occurrences of each keyword per 100 words.
func KeywordDensity(text string, keywords []string) map[string]float64 {
	density := make(map[string]float64, len(keywords))
	if text == "" || len(keywords) == 0 {
		return density
	}

	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(lower))
	for _, kw := range keywords {
		var d float64
		if wordCount > 0 {
			d = float64(strings.Count(lower, strings.ToLower(kw))) / float64(wordCount) * 100
		}
		density[kw] = roundTo(d, 2)
	}
	return density
}

func FormatSuggestions(suggestions []string, maxLength int) []string {
	formatted := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if runes := []rune(s); len(runes) > maxLength {
			s = string(runes[:maxLength-3]) + "..."
		}
		if !hasSuggestionPrefix(s) {
			s = fmt.Sprintf("Consider: %s", s)
		}
		formatted = append(formatted, s)
	}
	return formatted
}

func hasSuggestionPrefix(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range suggestionPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func GetTextStatistics(text string) TextStatistics {
	if text == "" {
		return TextStatistics{}
	}

	sentences := 0
	for _, s := range sentenceSplitPattern.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	return TextStatistics{
		WordCount:      len(strings.Fields(text)),
		CharacterCount: utf8.RuneCountInString(text),
		SentenceCount:  sentences,
	}
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
