package biz_test

import (
	"context"
	"fmt"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm"
)

func strPtr(s string) *string { return &s }

// testSnapshot is a small but complete profile exercising every entity type.
func testSnapshot() *model.ProfileSnapshot {
	return &model.ProfileSnapshot{
		Projects: []*model.Project{
			{
				ID:          1,
				Title:       "Telemetry Pipeline",
				Description: "Streaming ingestion service for device telemetry.",
				RepoURL:     strPtr("https://github.com/example/telemetry"),
				TechStack:   []string{"Go", "Kafka", "Postgres"},
			},
			{
				ID:          2,
				Title:       "Resume Assistant",
				Description: "Question answering over structured profile data.",
				TechStack:   []string{"Go", "Milvus"},
			},
		},
		Experiences: []*model.Experience{
			{
				ID:          1,
				Role:        "Backend Engineer",
				Company:     "Acme Corp",
				Location:    "Berlin",
				StartDate:   strPtr("2021-03"),
				EndDate:     strPtr("2023-08"),
				Description: []string{"Built internal APIs.", "Ran the on-call rotation."},
			},
			{
				ID:          2,
				Role:        "Software Engineer",
				Company:     "Startup GmbH",
				StartDate:   strPtr("2023-09"),
				Description: []string{"Owns the data platform."},
			},
		},
		Skills: []*model.Skill{
			{ID: 1, Name: "Go", Category: "Languages"},
			{ID: 2, Name: "Python", Category: "Languages"},
			{ID: 3, Name: "Kafka", Category: "Data"},
			{ID: 4, Name: "Kubernetes", Category: "Infrastructure"},
		},
		Education: []*model.Education{
			{
				ID:          1,
				Institution: "Example University",
				Degree:      "BSc Computer Science",
				StartDate:   "2017",
				EndDate:     strPtr("2021"),
			},
		},
		Certificates: []*model.Certificate{
			{ID: 1, Title: "CKAD", Issuer: "CNCF", IssueDate: "2022-05"},
		},
	}
}

// fixedProfileStore serves a fixed snapshot, optionally failing every read.
type fixedProfileStore struct {
	snapshot *model.ProfileSnapshot
	err      error
}

var _ store.ProfileStore = (*fixedProfileStore)(nil)

func (s *fixedProfileStore) Snapshot(ctx context.Context) (*model.ProfileSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

func (s *fixedProfileStore) Projects(ctx context.Context) ([]*model.Project, error) {
	return s.snapshot.Projects, s.err
}

func (s *fixedProfileStore) Experiences(ctx context.Context) ([]*model.Experience, error) {
	return s.snapshot.Experiences, s.err
}

func (s *fixedProfileStore) Skills(ctx context.Context) ([]*model.Skill, error) {
	return s.snapshot.Skills, s.err
}

func (s *fixedProfileStore) Education(ctx context.Context) ([]*model.Education, error) {
	return s.snapshot.Education, s.err
}

func (s *fixedProfileStore) Certificates(ctx context.Context) ([]*model.Certificate, error) {
	return s.snapshot.Certificates, s.err
}

// fakeEmbedding produces deterministic embeddings from text content. failAt
// makes the Nth EmbedSingle call fail (1-based); zero disables failures.
type fakeEmbedding struct {
	dim    int
	calls  int
	failAt int
}

var _ llm.EmbeddingProvider = (*fakeEmbedding)(nil)

func newFakeEmbedding(dim int) *fakeEmbedding {
	return &fakeEmbedding{dim: dim}
}

func (f *fakeEmbedding) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failAt > 0 && f.calls >= f.failAt {
		return nil, fmt.Errorf("embedding backend unavailable")
	}

	vec := make([]float32, f.dim)
	for i, r := range text {
		vec[i%f.dim] += float32(r)
	}
	return vec, nil
}

func (f *fakeEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		vec, err := f.EmbedSingle(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (f *fakeEmbedding) Name() string { return "fake-embedding" }

// fakeChat returns a canned answer and remembers the last prompt it saw.
type fakeChat struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

var _ llm.ChatProvider = (*fakeChat)(nil)

func (f *fakeChat) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeChat) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeChat) Name() string { return "fake-chat" }

// fakeRerank returns fixed results or a fixed error.
type fakeRerank struct {
	results []llm.RerankResult
	err     error
	calls   int
}

var _ llm.RerankProvider = (*fakeRerank)(nil)

func (f *fakeRerank) Rerank(ctx context.Context, query string, documents []string, topN int) ([]llm.RerankResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeRerank) Name() string { return "fake-rerank" }
