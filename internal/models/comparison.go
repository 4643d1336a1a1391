package models

import (
	"time"
)

type Comparison struct {
	ID                uint                   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResumeText        string                 `gorm:"type:text;not null" json:"resume_text"`
	JobDescription    string                 `gorm:"type:text;not null" json:"job_description"`
	MatchScore        float64                `gorm:"not null" json:"match_score"`
	FoundKeywords     []string               `gorm:"type:jsonb;serializer:json" json:"found_keywords"`
	MissingKeywords   []string               `gorm:"type:jsonb;serializer:json" json:"missing_keywords"`
	Suggestions       []string               `gorm:"type:jsonb;serializer:json" json:"suggestions"`
	RequiredSkills    []SkillMatch           `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	SimilarityDetails map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"similarity_details"`
	IndexedAt         *time.Time             `json:"indexed_at,omitempty"`
	CreatedAt         time.Time              `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func (Comparison) TableName() string {
	return "comparison_history"
}

// ToResponse projects a stored comparison onto the compare endpoint payload.
// Rows written before required_skills was persisted get it rebuilt from the
// keyword lists.
func (c *Comparison) ToResponse() ComparisonResponse {
	skills := c.RequiredSkills
	if len(skills) == 0 {
		for _, kw := range c.FoundKeywords {
			skills = append(skills, SkillMatch{Skill: kw, Found: true, Importance: 1.0})
		}
		for _, kw := range c.MissingKeywords {
			skills = append(skills, SkillMatch{Skill: kw, Found: false, Importance: 1.0})
		}
	}

	details := c.SimilarityDetails
	if details == nil {
		details = map[string]interface{}{}
	}

	return ComparisonResponse{
		ID:                c.ID,
		MatchScore:        c.MatchScore,
		RequiredSkills:    nonNilSkills(skills),
		FoundKeywords:     nonNilStrings(c.FoundKeywords),
		MissingKeywords:   nonNilStrings(c.MissingKeywords),
		Suggestions:       nonNilStrings(c.Suggestions),
		SimilarityDetails: details,
	}
}

func (c *Comparison) ToHistory() ComparisonHistoryResponse {
	return ComparisonHistoryResponse{
		ID:                   c.ID,
		MatchScore:           c.MatchScore,
		CreatedAt:            c.CreatedAt,
		MissingKeywordsCount: len(c.MissingKeywords),
		FoundKeywordsCount:   len(c.FoundKeywords),
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilSkills(s []SkillMatch) []SkillMatch {
	if s == nil {
		return []SkillMatch{}
	}
	return s
}
