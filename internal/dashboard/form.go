package dashboard

import (
	"strings"

	"rolereader/resume-matcher/internal/models"
)

type ComparisonForm struct {
	ResumeText     string
	JobDescription string
}

// CanSubmit is false while a comparison is in flight and until both texts
// have non-blank content.
func (f ComparisonForm) CanSubmit(loading bool) bool {
	return !loading && strings.TrimSpace(f.ResumeText) != "" && strings.TrimSpace(f.JobDescription) != ""
}

func (f ComparisonForm) Request() models.ComparisonRequest {
	return models.ComparisonRequest{
		ResumeText:     f.ResumeText,
		JobDescription: f.JobDescription,
	}
}
