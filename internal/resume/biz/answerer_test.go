package biz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
)

// syncedRetriever builds a retriever over a memory index populated from the
// test snapshot, sharing the embedding provider with the retriever.
func syncedRetriever(t *testing.T) *biz.Retriever {
	t.Helper()

	embed := newFakeEmbedding(8)
	vectors := seededVectors(t, embed, 6)
	return biz.NewRetriever(embed, vectors, nil, biz.DefaultConfig())
}

func TestAnswerRejectsEmptyQuery(t *testing.T) {
	a := biz.NewAnswerer(nil, nil, biz.DefaultConfig(), nil)

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := a.Answer(context.Background(), query, testSnapshot())
		assert.ErrorIs(t, err, biz.ErrEmptyQuery)
	}
}

func TestAnswerUsesVectorTierWhenAvailable(t *testing.T) {
	chat := &fakeChat{response: "The profile lists two backend projects."}
	a := biz.NewAnswerer(chat, syncedRetriever(t), biz.DefaultConfig(), nil)

	resp, err := a.Answer(context.Background(), "what backend work is there", testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, model.TierVectorLLM, resp.Tier)
	assert.Equal(t, "The profile lists two backend projects.", resp.Answer)
	assert.NotEmpty(t, resp.Sources)
	assert.LessOrEqual(t, len(resp.Sources), 5)
	assert.Contains(t, chat.lastPrompt, "what backend work is there")
	assert.Contains(t, chat.lastPrompt, "[1] From")
}

func TestAnswerFallsBackToKeywordLLM(t *testing.T) {
	chat := &fakeChat{response: "Projects include a telemetry pipeline."}

	// No retriever configured: the vector tier is skipped, not failed.
	a := biz.NewAnswerer(chat, nil, biz.DefaultConfig(), nil)

	resp, err := a.Answer(context.Background(), "tell me about your projects", testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, model.TierKeywordLLM, resp.Tier)
	assert.NotEmpty(t, resp.Sources)
	assert.LessOrEqual(t, len(resp.Sources), 4)
	for _, src := range resp.Sources {
		assert.Equal(t, model.DocTypeProject, src.Type)
		assert.Greater(t, src.Score, 0.0)
		assert.LessOrEqual(t, src.Score, 1.0)
	}
}

func TestAnswerDowngradesToTemplateOnChatFailure(t *testing.T) {
	chat := &fakeChat{err: errors.New("model overloaded")}
	a := biz.NewAnswerer(chat, syncedRetriever(t), biz.DefaultConfig(), nil)

	resp, err := a.Answer(context.Background(), "tell me about your projects", testSnapshot())
	require.NoError(t, err)

	// Vector and keyword LLM tiers both failed inside the same request.
	assert.Equal(t, model.TierKeywordTemplate, resp.Tier)
	assert.Contains(t, resp.Answer, "Here is what I found in the profile:")
	assert.NotEmpty(t, resp.Sources)
	assert.GreaterOrEqual(t, chat.calls, 2)
}

func TestAnswerTemplateTierWithoutChat(t *testing.T) {
	a := biz.NewAnswerer(nil, nil, biz.DefaultConfig(), nil)

	resp, err := a.Answer(context.Background(), "what skills do you have", testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, model.TierKeywordTemplate, resp.Tier)
	assert.Contains(t, resp.Answer, "Skill Category:")
}

func TestAnswerStaticDefaultHasSingleOverviewSource(t *testing.T) {
	a := biz.NewAnswerer(nil, nil, biz.DefaultConfig(), nil)

	resp, err := a.Answer(context.Background(), "xylophone zeppelin quandary", testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, model.TierStaticDefault, resp.Tier)
	assert.Contains(t, resp.Answer, "2 projects")
	assert.Contains(t, resp.Answer, "4 skills")

	require.Len(t, resp.Sources, 1)
	assert.Equal(t, model.DocTypeOverview, resp.Sources[0].Type)
	assert.Equal(t, "Professional Summary", resp.Sources[0].Title)
	assert.Equal(t, 1.0, resp.Sources[0].Score)
}

func TestAnswerStaticDefaultOnEmptyProfile(t *testing.T) {
	a := biz.NewAnswerer(nil, nil, biz.DefaultConfig(), nil)

	resp, err := a.Answer(context.Background(), "anything at all", &model.ProfileSnapshot{})
	require.NoError(t, err)

	assert.Equal(t, model.TierStaticDefault, resp.Tier)
	assert.Contains(t, resp.Answer, "0 projects")
	require.Len(t, resp.Sources, 1)
}

func TestAnswerUsesPromptForTier(t *testing.T) {
	chat := &fakeChat{response: "ok"}
	prompts := map[string]string{
		model.TierKeywordLLM: "KEYWORD TEMPLATE\nContext: {{context}}\nQ: {{question}}",
	}
	a := biz.NewAnswerer(chat, nil, biz.DefaultConfig(), prompts)

	_, err := a.Answer(context.Background(), "tell me about your projects", testSnapshot())
	require.NoError(t, err)

	assert.Contains(t, chat.lastPrompt, "KEYWORD TEMPLATE")
	assert.Contains(t, chat.lastPrompt, "Q: tell me about your projects")
	assert.NotContains(t, chat.lastPrompt, "{{context}}")
	assert.NotContains(t, chat.lastPrompt, "{{question}}")
}
