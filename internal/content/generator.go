package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultModel = "claude-sonnet-4-5"

// Generator turns transcripts into articles and translations via the
// Anthropic Messages API.
type Generator struct {
	client anthropic.Client
	model  string
}

// NewGenerator creates a generator. An empty model uses the default.
func NewGenerator(apiKey, model string) *Generator {
	if model == "" {
		model = defaultModel
	}
	return &Generator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// ArticleOptions configure article generation.
type ArticleOptions struct {
	Style        string // "long" (2000+ words) or "short" (500-800 words)
	Angle        string // optional editorial angle
	Instructions string // optional additional instructions
}

// GenerateArticle produces a markdown blog article from a transcript.
func (g *Generator) GenerateArticle(ctx context.Context, transcript string, opts ArticleOptions) (string, error) {
	return g.complete(ctx, articleSystemPrompt(), buildArticlePrompt(transcript, opts), 8192)
}

// CorrectTranscript cleans up a raw transcript: punctuation, filler words,
// obvious mishearings. The wording itself is preserved.
func (g *Generator) CorrectTranscript(ctx context.Context, transcript, instructions string) (string, error) {
	return g.complete(ctx, correctionSystemPrompt(), buildCorrectionPrompt(transcript, instructions), 8192)
}

// Translate renders content into the target language, preserving markdown
// structure, tone and any SEO keywords.
func (g *Generator) Translate(ctx context.Context, content, targetLang string, keywords []string) (string, error) {
	name, ok := Languages[targetLang]
	if !ok {
		return "", fmt.Errorf("unsupported target language: %s", targetLang)
	}
	return g.complete(ctx, translationSystemPrompt(name), buildTranslationPrompt(content, keywords), 8192)
}

func (g *Generator) complete(ctx context.Context, system, prompt string, maxTokens int64) (string, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
