package services

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"rolereader/resume-matcher/internal/models"
)

const (
	keywordWeight    = 70.0
	similarityWeight = 0.3
	fuzzyThreshold   = 80.0
	fuzzyMinLength   = 4
	maxSuggestions   = 8
	minFoundKeywords = 10
)

var (
	preprocessPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.+#]`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

var genericSuggestions = []string{
	"Use action verbs to describe your achievements (e.g., 'Developed', 'Implemented', 'Led')",
	"Quantify your accomplishments with specific numbers and metrics",
	"Include relevant certifications and training programs",
	"Highlight transferable skills that match the job requirements",
	"Customize your professional summary to align with the job description",
}

type NLPService interface {
	Initialize() error
	IsReady() bool
	CompareTexts(resumeText, jobDescription string) (*ComparisonResult, error)
}

type ComparisonResult struct {
	MatchScore        float64
	RequiredSkills    []models.SkillMatch
	FoundKeywords     []string
	MissingKeywords   []string
	Suggestions       []string
	SimilarityDetails map[string]interface{}
}

type nlpService struct {
	ready          atomic.Bool
	techSkills     map[string]bool
	softSkills     map[string]bool
	stopWords      map[string]bool
	extraTermLimit int
}

func NewNLPService(extraTermLimit int) NLPService {
	if extraTermLimit < 0 {
		extraTermLimit = 0
	}
	return &nlpService{extraTermLimit: extraTermLimit}
}

// Initialize implements NLPService.
func (n *nlpService) Initialize() error {
	if n.ready.Load() {
		return nil
	}

	n.techSkills = toSet(techSkills)
	n.softSkills = toSet(softSkills)
	n.stopWords = toSet(englishStopWords)
	if len(n.techSkills) == 0 || len(n.stopWords) == 0 {
		return fmt.Errorf("NLP initialization failed: empty dictionaries")
	}

	n.ready.Store(true)
	log.Printf("✅ NLP service initialized (%d tech skills, %d soft skills)\n", len(n.techSkills), len(n.softSkills))
	return nil
}

// IsReady implements NLPService.
func (n *nlpService) IsReady() bool {
	return n.ready.Load()
}

// CompareTexts implements NLPService.
func (n *nlpService) CompareTexts(resumeText, jobDescription string) (*ComparisonResult, error) {
	if !n.IsReady() {
		return nil, ErrNLPNotReady
	}

	resumeDoc := n.newDocument(resumeText)
	jobDoc := n.newDocument(jobDescription)

	resumeKeywords := n.extractKeywords(resumeDoc)
	jobKeywords := n.extractKeywords(jobDoc)

	found := make([]string, 0)
	missing := make([]string, 0)
	for kw := range jobKeywords {
		if resumeKeywords[kw] || n.containsTerm(resumeDoc, kw) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	sort.Strings(found)
	sort.Strings(missing)

	var keywordScore float64
	if len(jobKeywords) > 0 {
		keywordScore = float64(len(found)) / float64(len(jobKeywords)) * keywordWeight
	}

	textSimilarity := n.textSimilarity(resumeText, jobDescription)
	matchScore := math.Max(0, math.Min(keywordScore+textSimilarity*similarityWeight, 100))

	foundSet := toSet(found)
	requiredSkills := make([]models.SkillMatch, 0, len(jobKeywords))
	for kw := range jobKeywords {
		importance := 0.5
		if n.techSkills[kw] {
			importance = 1.0
		}
		requiredSkills = append(requiredSkills, models.SkillMatch{
			Skill:      kw,
			Found:      foundSet[kw],
			Importance: importance,
		})
	}
	sortRequiredSkills(requiredSkills)

	return &ComparisonResult{
		MatchScore:      roundTo(matchScore, 2),
		RequiredSkills:  requiredSkills,
		FoundKeywords:   found,
		MissingKeywords: missing,
		Suggestions:     n.generateSuggestions(missing, found),
		SimilarityDetails: map[string]interface{}{
			"keyword_match_percentage":   roundTo(keywordScore, 2),
			"text_similarity_percentage": roundTo(textSimilarity, 2),
			"total_job_keywords":         len(jobKeywords),
			"total_resume_keywords":      len(resumeKeywords),
			"matched_keywords_count":     len(found),
		},
	}, nil
}

// document is a preprocessed text: the normalised token stream, the same
// stream padded with spaces for phrase lookups, and the unique token set.
type document struct {
	tokens []string
	padded string
	unique map[string]bool
}

func (n *nlpService) newDocument(text string) document {
	processed := preprocessText(text)

	var tokens []string
	for _, tok := range strings.Fields(processed) {
		tok = strings.Trim(tok, ".-")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	return document{
		tokens: tokens,
		padded: " " + strings.Join(tokens, " ") + " ",
		unique: toSet(tokens),
	}
}

func preprocessText(text string) string {
	text = strings.ToLower(text)
	text = preprocessPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (n *nlpService) extractKeywords(doc document) map[string]bool {
	keywords := make(map[string]bool)

	for skill := range n.techSkills {
		if n.matchesSkill(doc, skill) {
			keywords[skill] = true
		}
	}
	for skill := range n.softSkills {
		if n.matchesSkill(doc, skill) {
			keywords[skill] = true
		}
	}

	for _, term := range n.frequentTerms(doc) {
		keywords[term] = true
	}
	return keywords
}

// containsTerm reports whether a non-skill job term appears anywhere in doc.
// Skills are settled by extractKeywords already.
func (n *nlpService) containsTerm(doc document, kw string) bool {
	if n.techSkills[kw] || n.softSkills[kw] {
		return false
	}
	return doc.unique[kw]
}

func (n *nlpService) matchesSkill(doc document, skill string) bool {
	for _, form := range skillForms(skill) {
		if strings.Contains(doc.padded, " "+form+" ") {
			return true
		}
	}

	if utf8.RuneCountInString(skill) < fuzzyMinLength || strings.ContainsAny(skill, "-/ ") {
		return false
	}
	for tok := range doc.unique {
		if fuzzyRatio(skill, tok) > fuzzyThreshold {
			return true
		}
	}
	return false
}

func skillForms(skill string) []string {
	forms := []string{skill}
	for _, f := range []string{
		strings.ReplaceAll(skill, "-", " "),
		strings.ReplaceAll(skill, "-", ""),
		strings.ReplaceAll(skill, "/", " "),
	} {
		if f != skill {
			forms = append(forms, f)
		}
	}
	return forms
}

// fuzzyRatio is the Levenshtein similarity of a and b scaled to 0..100.
func fuzzyRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	// Skip pairs whose length gap alone rules out the threshold.
	if diff := la - lb; float64(abs(diff)) > float64(longest)*(100-fuzzyThreshold)/100 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (1 - float64(dist)/float64(longest)) * 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// frequentTerms returns the most repeated content words that are not
// already dictionary skills.
func (n *nlpService) frequentTerms(doc document) []string {
	if n.extraTermLimit == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tok := range doc.tokens {
		if utf8.RuneCountInString(tok) <= 2 || n.stopWords[tok] || n.techSkills[tok] || n.softSkills[tok] || isNumeric(tok) {
			continue
		}
		counts[tok]++
	}

	terms := make([]string, 0, len(counts))
	for term, c := range counts {
		if c >= 2 {
			terms = append(terms, term)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > n.extraTermLimit {
		terms = terms[:n.extraTermLimit]
	}
	return terms
}

func isNumeric(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// textSimilarity is the TF-IDF cosine similarity of the two texts as a
// percentage.
func (n *nlpService) textSimilarity(resumeText, jobText string) float64 {
	vectors := newTFIDFVectorizer(n.stopWords, 1, 2).FitTransform([]string{resumeText, jobText})
	sim := cosineSimilarity(vectors[0], vectors[1]) * 100
	return math.Max(0, math.Min(sim, 100))
}

func (n *nlpService) generateSuggestions(missing, found []string) []string {
	var suggestions []string

	var techMissing []string
	for _, kw := range missing {
		if n.techSkills[kw] {
			techMissing = append(techMissing, kw)
		}
		if len(techMissing) == 5 {
			break
		}
	}
	if len(techMissing) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider adding experience with: %s", strings.Join(techMissing, ", ")))
	}

	if len(found) < minFoundKeywords {
		suggestions = append(suggestions, "Expand your technical skills section to include more relevant keywords")
	}

	if len(missing) > len(found) {
		suggestions = append(suggestions, "Tailor your resume more closely to the job requirements")
	}

	suggestions = append(suggestions, genericSuggestions...)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// sortRequiredSkills orders found skills first, then higher importance,
// then by name.
func sortRequiredSkills(skills []models.SkillMatch) {
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Found != skills[j].Found {
			return skills[i].Found
		}
		if skills[i].Importance != skills[j].Importance {
			return skills[i].Importance > skills[j].Importance
		}
		return skills[i].Skill < skills[j].Skill
	})
}
