package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const maxEnhancedSuggestions = 3

// SuggestionEnhancer proposes resume edits beyond the rule-based ones.
type SuggestionEnhancer interface {
	Suggest(ctx context.Context, resumeText, jobDescription string, missing []string) ([]string, error)
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSuggestionPrompt asks for short, concrete resume edits as a JSON array.
func (pb *PromptBuilder) BuildSuggestionPrompt(resumeText, jobDescription string, missing []string) string {
	missingList := "none"
	if len(missing) > 0 {
		missingList = strings.Join(missing, ", ")
	}

	return fmt.Sprintf(`You are an experienced technical recruiter reviewing a resume against a job description.

JOB DESCRIPTION:
%s

RESUME:
%s

KEYWORDS MISSING FROM THE RESUME:
%s

Suggest at most %d specific edits that would make this resume a better match for the job.
Each suggestion must be one sentence, start with an action verb, and be under 150 characters.
Do not invent experience the candidate does not have.

Return ONLY a JSON array of strings, for example:
["Add a bullet describing your Kubernetes deployment work", "Mention AWS services you have used"]`,
		truncateRunes(jobDescription, 6000), truncateRunes(resumeText, 6000), missingList, maxEnhancedSuggestions)
}

type geminiSuggester struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	maxRetries int
}

func NewGeminiSuggester(gemini GeminiService, maxRetries int) SuggestionEnhancer {
	return &geminiSuggester{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

// Suggest implements SuggestionEnhancer.
func (s *geminiSuggester) Suggest(ctx context.Context, resumeText, jobDescription string, missing []string) ([]string, error) {
	prompt := s.prompts.BuildSuggestionPrompt(resumeText, jobDescription, missing)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	suggestions, err := parseSuggestions(response)
	if err != nil {
		return nil, err
	}
	return FormatSuggestions(suggestions, 150), nil
}

func parseSuggestions(response string) ([]string, error) {
	var suggestions []string
	if err := json.Unmarshal([]byte(extractJSONArray(response)), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	if len(suggestions) > maxEnhancedSuggestions {
		suggestions = suggestions[:maxEnhancedSuggestions]
	}
	return suggestions, nil
}

// extractJSONArray strips markdown fences and any prose around the array.
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
