package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/pkg/textutil"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm"
)

const (
	maxVectorSources  = 5
	maxKeywordSources = 4
	templateDocLimit  = 3
	templateDocWidth  = 300
)

// Answerer produces an answer for a query by walking an ordered list of
// strategies, from vector retrieval plus LLM down to a static overview. Each
// strategy is tried only if its capabilities are present; a failure inside a
// strategy downgrades to the next one within the same request. The final
// static tier cannot fail, so Answer always returns a response.
type Answerer struct {
	chat      llm.ChatProvider
	retriever *Retriever
	cfg       *Config
	prompts   map[string]string
}

// NewAnswerer creates an answerer. The chat provider may be nil; LLM tiers
// are then skipped. Nil prompts fall back to DefaultPrompts.
func NewAnswerer(chat llm.ChatProvider, retriever *Retriever, cfg *Config, prompts map[string]string) *Answerer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultPrompts()
	if prompts == nil {
		prompts = defaults
	} else {
		for tier, tmpl := range defaults {
			if prompts[tier] == "" {
				prompts[tier] = tmpl
			}
		}
	}
	return &Answerer{
		chat:      chat,
		retriever: retriever,
		cfg:       cfg,
		prompts:   prompts,
	}
}

type tier struct {
	name      string
	available func() bool
	run       func(ctx context.Context) (*model.QueryResponse, error)
}

// Answer walks the strategy cascade for the query. The snapshot must be a
// fresh read of the profile; keyword tiers match against it directly.
func (a *Answerer) Answer(ctx context.Context, query string, snapshot *model.ProfileSnapshot) (*model.QueryResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	docs := FormatProfile(snapshot)
	matcher := NewKeywordMatcher(snapshot, a.cfg.Weights)

	tiers := []tier{
		{
			name:      model.TierVectorLLM,
			available: func() bool { return a.chat != nil && a.retriever != nil && a.retriever.Available() },
			run: func(ctx context.Context) (*model.QueryResponse, error) {
				return a.answerVectorLLM(ctx, query)
			},
		},
		{
			name:      model.TierKeywordLLM,
			available: func() bool { return a.chat != nil },
			run: func(ctx context.Context) (*model.QueryResponse, error) {
				return a.answerKeywordLLM(ctx, query, matcher, docs)
			},
		},
		{
			name:      model.TierKeywordTemplate,
			available: func() bool { return true },
			run: func(ctx context.Context) (*model.QueryResponse, error) {
				return a.answerKeywordTemplate(query, matcher, docs)
			},
		},
		{
			name:      model.TierStaticDefault,
			available: func() bool { return true },
			run: func(ctx context.Context) (*model.QueryResponse, error) {
				return a.answerStatic(snapshot), nil
			},
		},
	}

	for _, t := range tiers {
		if !t.available() {
			logger.Debugw("answer tier unavailable", "tier", t.name)
			continue
		}

		resp, err := t.run(ctx)
		if err != nil {
			logger.Warnw("answer tier failed, downgrading",
				"tier", t.name,
				"error", err.Error(),
				"query", textutil.TruncateString(query, 80),
			)
			continue
		}

		resp.Tier = t.name
		logger.Infow("answer produced", "tier", t.name, "sources", len(resp.Sources))
		return resp, nil
	}

	// Unreachable: the static tier never fails.
	return nil, fmt.Errorf("no answer strategy available")
}

func (a *Answerer) answerVectorLLM(ctx context.Context, query string) (*model.QueryResponse, error) {
	matches, err := a.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no vector matches for query")
	}

	var contextBuilder strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&contextBuilder, "[%d] From %s - %s:\n%s\n\n", i+1, m.Type, m.Title, m.Content)
	}

	prompt := RenderPrompt(a.prompts[model.TierVectorLLM], contextBuilder.String(), query)
	answer, err := a.chat.Generate(ctx, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	sources := make([]model.Source, 0, len(matches))
	for _, m := range matches {
		if len(sources) >= maxVectorSources {
			break
		}
		sources = append(sources, model.Source{Type: m.Type, Title: m.Title, Score: m.Score})
	}

	return &model.QueryResponse{Answer: answer, Sources: sources}, nil
}

func (a *Answerer) answerKeywordLLM(ctx context.Context, query string, matcher *KeywordMatcher, docs []*model.Document) (*model.QueryResponse, error) {
	scored := matcher.Match(query, docs)
	if len(scored) == 0 {
		return nil, fmt.Errorf("no keyword matches for query")
	}
	if len(scored) > maxKeywordSources {
		scored = scored[:maxKeywordSources]
	}

	var contextBuilder strings.Builder
	for i, s := range scored {
		fmt.Fprintf(&contextBuilder, "[%d] From %s - %s:\n%s\n\n", i+1, s.Document.Type, s.Document.Title, s.Document.Content)
	}

	prompt := RenderPrompt(a.prompts[model.TierKeywordLLM], contextBuilder.String(), query)
	answer, err := a.chat.Generate(ctx, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &model.QueryResponse{Answer: answer, Sources: keywordSources(scored)}, nil
}

func (a *Answerer) answerKeywordTemplate(query string, matcher *KeywordMatcher, docs []*model.Document) (*model.QueryResponse, error) {
	scored := matcher.Match(query, docs)
	if len(scored) == 0 {
		return nil, fmt.Errorf("no keyword matches for query")
	}
	if len(scored) > maxKeywordSources {
		scored = scored[:maxKeywordSources]
	}

	var sb strings.Builder
	sb.WriteString("Here is what I found in the profile:\n")
	for i, s := range scored {
		if i >= templateDocLimit {
			break
		}
		excerpt := textutil.TruncateString(strings.TrimSpace(s.Document.Content), templateDocWidth)
		fmt.Fprintf(&sb, "\n- %s\n", excerpt)
	}

	return &model.QueryResponse{Answer: sb.String(), Sources: keywordSources(scored)}, nil
}

// answerStatic is the last-resort tier: a generic overview built purely from
// entity counts, with exactly one overview source.
func (a *Answerer) answerStatic(snapshot *model.ProfileSnapshot) *model.QueryResponse {
	var projects, experiences, skills, education, certificates int
	if snapshot != nil {
		projects = len(snapshot.Projects)
		experiences = len(snapshot.Experiences)
		skills = len(snapshot.Skills)
		education = len(snapshot.Education)
		certificates = len(snapshot.Certificates)
	}

	answer := fmt.Sprintf(
		"I can share an overview of this profile: %d projects, %d work experiences, "+
			"%d skills, %d education entries and %d certificates. "+
			"Ask me about projects, work experience, skills, education, or certificates.",
		projects, experiences, skills, education, certificates,
	)

	return &model.QueryResponse{
		Answer: answer,
		Sources: []model.Source{
			{Type: model.DocTypeOverview, Title: "Professional Summary", Score: 1.0},
		},
	}
}

func keywordSources(scored []ScoredDocument) []model.Source {
	sources := make([]model.Source, 0, len(scored))
	for _, s := range scored {
		sources = append(sources, model.Source{
			Type:  s.Document.Type,
			Title: s.Document.Title,
			Score: NormalizeScore(s.Score),
		})
	}
	return sources
}
