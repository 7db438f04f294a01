package biz

import (
	"strings"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
)

// Prompt templates are plain data keyed by answer tier. {{context}} and
// {{question}} are substituted at generation time. Overriding a template via
// configuration changes answer style without touching pipeline code.

// DefaultPrompts returns the built-in prompt template per tier. Only the LLM
// tiers carry prompts; the template and static tiers do not call a model.
func DefaultPrompts() map[string]string {
	return map[string]string{
		model.TierVectorLLM: `You are an assistant answering questions about a professional profile.
Answer the question using ONLY the profile excerpts below. Be concise and specific.
If the excerpts do not contain the answer, say so instead of guessing.

Profile excerpts:
{{context}}

Question: {{question}}`,

		model.TierKeywordLLM: `You are an assistant answering questions about a professional profile.
Semantic search is currently unavailable, so the excerpts below were selected
by keyword match and may be loosely related. Answer the question from them as
best you can, and be upfront when they do not cover it.

Profile excerpts:
{{context}}

Question: {{question}}`,
	}
}

// RenderPrompt substitutes the context and question into a template.
func RenderPrompt(template, context, question string) string {
	prompt := strings.ReplaceAll(template, "{{context}}", context)
	return strings.ReplaceAll(prompt, "{{question}}", question)
}
