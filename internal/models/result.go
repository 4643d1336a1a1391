package models

import "time"

type ComparisonRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

type SkillMatch struct {
	Skill      string  `json:"skill"`
	Found      bool    `json:"found"`
	Importance float64 `json:"importance"`
}

type ComparisonResponse struct {
	ID                uint                   `json:"id"`
	MatchScore        float64                `json:"match_score"`
	RequiredSkills    []SkillMatch           `json:"required_skills"`
	FoundKeywords     []string               `json:"found_keywords"`
	MissingKeywords   []string               `json:"missing_keywords"`
	Suggestions       []string               `json:"suggestions"`
	SimilarityDetails map[string]interface{} `json:"similarity_details"`
}

type ComparisonHistoryResponse struct {
	ID                   uint      `json:"id"`
	MatchScore           float64   `json:"match_score"`
	CreatedAt            time.Time `json:"created_at"`
	MissingKeywordsCount int       `json:"missing_keywords_count"`
	FoundKeywordsCount   int       `json:"found_keywords_count"`
}

type SimilarComparison struct {
	ComparisonHistoryResponse
	Similarity float32 `json:"similarity"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	NLPReady bool   `json:"nlp_ready"`
	Version  string `json:"version"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
