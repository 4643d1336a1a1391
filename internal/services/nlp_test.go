package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolereader/resume-matcher/internal/models"
)

func newReadyNLP(t *testing.T, extraTerms int) NLPService {
	svc := NewNLPService(extraTerms)
	require.NoError(t, svc.Initialize())
	return svc
}

func TestNLPService_NotReady(t *testing.T) {
	svc := NewNLPService(0)
	assert.False(t, svc.IsReady())

	_, err := svc.CompareTexts("resume", "job")
	assert.ErrorIs(t, err, ErrNLPNotReady)
}

func TestNLPService_CompareTexts(t *testing.T) {
	svc := newReadyNLP(t, 0)
	assert.True(t, svc.IsReady())

	resume := "I am a Python developer with Django and PostgreSQL experience. Strong leadership and communication."
	job := "Looking for Python developer with Django, Kubernetes and AWS. Communication required."

	res, err := svc.CompareTexts(resume, job)
	require.NoError(t, err)

	assert.Equal(t, []string{"communication", "django", "python"}, res.FoundKeywords)
	assert.Equal(t, []string{"aws", "kubernetes"}, res.MissingKeywords)
	assert.Equal(t, []models.SkillMatch{
		{Skill: "django", Found: true, Importance: 1.0},
		{Skill: "python", Found: true, Importance: 1.0},
		{Skill: "communication", Found: true, Importance: 0.5},
		{Skill: "aws", Found: false, Importance: 1.0},
		{Skill: "kubernetes", Found: false, Importance: 1.0},
	}, res.RequiredSkills)

	assert.Equal(t, 42.0, res.SimilarityDetails["keyword_match_percentage"])
	assert.Equal(t, 5, res.SimilarityDetails["total_job_keywords"])
	assert.Equal(t, 3, res.SimilarityDetails["matched_keywords_count"])
	assert.Greater(t, res.MatchScore, 42.0)
	assert.LessOrEqual(t, res.MatchScore, 72.0)

	require.Len(t, res.Suggestions, 7)
	assert.Equal(t, "Consider adding experience with: aws, kubernetes", res.Suggestions[0])
	assert.Equal(t, "Expand your technical skills section to include more relevant keywords", res.Suggestions[1])
}

func TestNLPService_IdenticalTextsScoreFull(t *testing.T) {
	svc := newReadyNLP(t, 10)
	text := "Senior Go engineer building Kubernetes operators, gRPC services and PostgreSQL schemas with Docker."

	res, err := svc.CompareTexts(text, text)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.MatchScore)
	assert.Empty(t, res.MissingKeywords)
}

func TestNLPService_NoJobKeywords(t *testing.T) {
	svc := newReadyNLP(t, 0)

	res, err := svc.CompareTexts("Lorem ipsum dolor sit amet consectetur", "Quisque blandit faucibus tempor")
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.MatchScore)
	assert.Empty(t, res.RequiredSkills)
	assert.Empty(t, res.FoundKeywords)
	assert.Equal(t, 0, res.SimilarityDetails["total_job_keywords"])
}

func TestNLPService_FrequentTerms(t *testing.T) {
	svc := newReadyNLP(t, 2)

	job := "payments payments ledger ledger ledger reconciliation"
	resume := "Owned the ledger migration"

	res, err := svc.CompareTexts(resume, job)
	require.NoError(t, err)

	assert.Equal(t, []string{"ledger"}, res.FoundKeywords)
	assert.Equal(t, []string{"payments"}, res.MissingKeywords)
	assert.Equal(t, 0.5, res.RequiredSkills[0].Importance)
}

func TestNLPService_NonLatinTerms(t *testing.T) {
	svc := newReadyNLP(t, 2)

	job := "разработчик разработчик платежей платежей платежей сверка"
	resume := "Опытный разработчик серверных систем"

	res, err := svc.CompareTexts(resume, job)
	require.NoError(t, err)

	assert.Equal(t, []string{"разработчик"}, res.FoundKeywords)
	assert.Equal(t, []string{"платежей"}, res.MissingKeywords)
}

func TestPreprocessText(t *testing.T) {
	assert.Equal(t, "développeur expérimenté", preprocessText("Développeur expérimenté!"))
	assert.Equal(t, "c++ c# node.js", preprocessText("C++, C#; Node.js"))
	assert.Equal(t, "инженер go", preprocessText("Инженер (Go)"))
}

func TestNLPService_SkillForms(t *testing.T) {
	svc := newReadyNLP(t, 0)

	res, err := svc.CompareTexts(
		"Built dashboards in Power BI, ran CI/CD pipelines and wrote C++ and Node.js code",
		"Needs power-bi, ci/cd, c++ and node.js",
	)
	require.NoError(t, err)

	for _, kw := range []string{"power-bi", "ci/cd", "c++", "node.js"} {
		assert.Contains(t, res.FoundKeywords, kw)
	}
}

func TestFuzzyRatio(t *testing.T) {
	testCases := []struct {
		name  string
		a, b  string
		above bool
	}{
		{name: "typo", a: "kubernetes", b: "kubernets", above: true},
		{name: "plural", a: "python", b: "pythons", above: true},
		{name: "one substitution in five", a: "react", b: "reach", above: false},
		{name: "length gap", a: "java", b: "javascript", above: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.above, fuzzyRatio(tc.a, tc.b) > fuzzyThreshold)
		})
	}
}

func TestTFIDFCosine(t *testing.T) {
	v := newTFIDFVectorizer(toSet(englishStopWords), 1, 2)

	same := v.FitTransform([]string{"golang microservices kafka", "golang microservices kafka"})
	assert.InDelta(t, 1.0, cosineSimilarity(same[0], same[1]), 1e-9)

	disjoint := v.FitTransform([]string{"golang microservices", "watercolor painting"})
	assert.Equal(t, 0.0, cosineSimilarity(disjoint[0], disjoint[1]))

	partial := v.FitTransform([]string{"golang microservices kafka", "golang frontend react"})
	sim := cosineSimilarity(partial[0], partial[1])
	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 1.0)

	empty := v.FitTransform([]string{"the and of", "golang"})
	assert.Equal(t, 0.0, cosineSimilarity(empty[0], empty[1]))
}
