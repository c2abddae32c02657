package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/export"
	"github.com/podscribe/backend/internal/job"
)

// Service processes article generation and translation jobs.
type Service struct {
	gen   *Generator
	store *db.Database
}

// NewService creates a content service backed by the Anthropic API.
func NewService(store *db.Database, apiKey, model string) *Service {
	return &Service{
		gen:   NewGenerator(apiKey, model),
		store: store,
	}
}

// HandleGenerateJob turns a stored transcript into an article.
func (s *Service) HandleGenerateJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.GenerateParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	transcript, err := s.store.GetTranscript(params.TranscriptID)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	if transcript.Text == "" {
		return fmt.Errorf("transcript %s has no text", transcript.ID)
	}

	style := params.Style
	if style == "" {
		style = "long"
	}

	log.Info().Msgf("[content] generating article: transcript=%s style=%s", transcript.ID, style)
	updateProgress(0.1)

	source := transcript.Text
	if params.CorrectFirst {
		corrected, err := s.gen.CorrectTranscript(ctx, source, params.Instructions)
		if err != nil {
			return fmt.Errorf("correct transcript: %w", err)
		}
		source = corrected
		updateProgress(0.4)
	}

	body, err := s.gen.GenerateArticle(ctx, source, ArticleOptions{
		Style:        style,
		Angle:        params.Angle,
		Instructions: params.Instructions,
	})
	if err != nil {
		return fmt.Errorf("generate article: %w", err)
	}
	updateProgress(0.9)

	article := &models.Article{
		ID:           uuid.New().String(),
		TranscriptID: transcript.ID,
		Title:        export.ExtractTitle(body),
		Style:        style,
		Language:     transcript.Language,
		Content:      body,
	}
	if err := s.store.SaveArticle(article); err != nil {
		return fmt.Errorf("save article: %w", err)
	}

	log.Info().Msgf("[content] article generated: %s (%q)", article.ID, article.Title)

	resultJSON, _ := json.Marshal(job.GenerateResult{
		ArticleID: article.ID,
		Title:     article.Title,
	})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}

// HandleTranslateJob translates a stored article into a target language,
// saving the result as a new article linked to the same transcript.
func (s *Service) HandleTranslateJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.TranslateParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	source, err := s.store.GetArticle(params.ArticleID)
	if err != nil {
		return fmt.Errorf("load article: %w", err)
	}

	log.Info().Msgf("[content] translating article: %s -> %s", source.ID, params.TargetLang)
	updateProgress(0.1)

	translated, err := s.gen.Translate(ctx, source.Content, params.TargetLang, params.SEOKeywords)
	if err != nil {
		return fmt.Errorf("translate article: %w", err)
	}

	updateProgress(0.9)

	article := &models.Article{
		ID:           uuid.New().String(),
		TranscriptID: source.TranscriptID,
		Title:        export.ExtractTitle(translated),
		Style:        source.Style,
		Language:     params.TargetLang,
		Content:      translated,
	}
	if err := s.store.SaveArticle(article); err != nil {
		return fmt.Errorf("save translated article: %w", err)
	}

	log.Info().Msgf("[content] translation complete: %s lang=%s", article.ID, article.Language)

	resultJSON, _ := json.Marshal(job.TranslateResult{
		ArticleID: article.ID,
		Language:  article.Language,
	})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}
