package transcribe

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient transcribes audio through the OpenAI Whisper API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a Whisper API client. An empty model uses whisper-1.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

// Transcribe uploads the artifact and requests verbose JSON so the response
// carries segments and duration alongside the text.
func (c *OpenAIClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
	audioReq := openai.AudioRequest{
		Model:    c.model,
		FilePath: req.Path,
		Prompt:   req.Prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if req.Language != "" && req.Language != "auto" {
		audioReq.Language = req.Language
	}

	resp, err := c.client.CreateTranscription(ctx, audioReq)
	if err != nil {
		return nil, fmt.Errorf("whisper api: %w", err)
	}

	result := &Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return result, nil
}
