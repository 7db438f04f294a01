package biz

import (
	"sort"
	"strings"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/pkg/textutil"
)

// structuralTerms map section words to the document type they refer to, so a
// query like "tell me about your projects" lands on project documents even
// when the word itself never appears in the text.
var structuralTerms = map[string]string{
	"project":        model.DocTypeProject,
	"projects":       model.DocTypeProject,
	"work":           model.DocTypeExperience,
	"job":            model.DocTypeExperience,
	"experience":     model.DocTypeExperience,
	"experiences":    model.DocTypeExperience,
	"skill":          model.DocTypeSkills,
	"skills":         model.DocTypeSkills,
	"technologies":   model.DocTypeSkills,
	"education":      model.DocTypeEducation,
	"degree":         model.DocTypeEducation,
	"study":          model.DocTypeEducation,
	"university":     model.DocTypeEducation,
	"certificate":    model.DocTypeCertificate,
	"certificates":   model.DocTypeCertificate,
	"certification":  model.DocTypeCertificate,
	"certifications": model.DocTypeCertificate,
}

// minTokenLen filters out short tokens like "a" or "of".
const minTokenLen = 2

// ScoredDocument is one document with its keyword relevance score.
type ScoredDocument struct {
	Document *model.Document
	Score    float64
}

// KeywordMatcher ranks profile documents by weighted keyword overlap with a
// query. It needs no external services and backs the degraded answer tiers.
type KeywordMatcher struct {
	weights KeywordWeights

	// domainTerms are derived from the profile itself: project title words,
	// skill names and technology names.
	domainTerms map[string]bool
}

// NewKeywordMatcher builds a matcher for the given snapshot.
func NewKeywordMatcher(snapshot *model.ProfileSnapshot, weights KeywordWeights) *KeywordMatcher {
	domain := make(map[string]bool)

	if snapshot != nil {
		for _, p := range snapshot.Projects {
			for _, tok := range textutil.Tokenize(p.Title, minTokenLen) {
				domain[tok] = true
			}
			for _, tech := range p.TechStack {
				for _, tok := range textutil.Tokenize(tech, minTokenLen) {
					domain[tok] = true
				}
			}
		}
		for _, s := range snapshot.Skills {
			for _, tok := range textutil.Tokenize(s.Name, minTokenLen) {
				domain[tok] = true
			}
		}
	}

	return &KeywordMatcher{
		weights:     weights,
		domainTerms: domain,
	}
}

// Match scores every document against the query and returns those with a
// positive score, ordered by descending score. Ties keep document order.
func (m *KeywordMatcher) Match(query string, docs []*model.Document) []ScoredDocument {
	tokens := textutil.Tokenize(query, minTokenLen)
	if len(tokens) == 0 {
		return nil
	}

	var scored []ScoredDocument
	for _, doc := range docs {
		haystack := strings.ToLower(doc.Title + "\n" + doc.Content)

		var score float64
		for _, tok := range tokens {
			if docType, ok := structuralTerms[tok]; ok {
				if docType == doc.Type {
					score += m.weights.Structural
				}
				continue
			}
			if !strings.Contains(haystack, tok) {
				continue
			}
			if m.domainTerms[tok] {
				score += m.weights.Domain
			} else {
				score += m.weights.Default
			}
		}

		if score > 0 {
			scored = append(scored, ScoredDocument{Document: doc, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// NormalizeScore maps a raw keyword score into (0, 1] for source reporting.
func NormalizeScore(raw float64) float64 {
	score := raw / 10
	if score > 1 {
		return 1
	}
	return score
}
