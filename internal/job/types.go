package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobTranscribe JobType = "transcribe"
	JobGenerate   JobType = "generate"
	JobTranslate  JobType = "translate"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued task (transcription, article generation or translation)
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	FilePath    string          `json:"file_path"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TranscribeParams are parameters for a transcription job
type TranscribeParams struct {
	UploadID string `json:"upload_id"`
	Engine   string `json:"engine"`   // "openai", "whisper.cpp"
	Language string `json:"language"` // "auto", "en", "fr", etc.
	Prompt   string `json:"prompt"`   // optional context prompt
}

// TranscribeResult is the output of a completed transcription job
type TranscribeResult struct {
	TranscriptID     string `json:"transcript_id"`
	Language         string `json:"language"`
	TotalChunks      int    `json:"total_chunks"`
	SuccessfulChunks int    `json:"successful_chunks"`
	FailedChunks     int    `json:"failed_chunks"`
}

// GenerateParams are parameters for an article generation job
type GenerateParams struct {
	TranscriptID string `json:"transcript_id"`
	Style        string `json:"style"` // "long" or "short"
	Angle        string `json:"angle,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	CorrectFirst bool   `json:"correct_first,omitempty"` // clean up the transcript before writing
}

// GenerateResult is the output of a completed generation job
type GenerateResult struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
}

// TranslateParams are parameters for an article translation job
type TranslateParams struct {
	ArticleID   string   `json:"article_id"`
	TargetLang  string   `json:"target_lang"` // "fr", "es", "de", etc.
	SEOKeywords []string `json:"seo_keywords,omitempty"`
}

// TranslateResult is the output of a completed translation job
type TranslateResult struct {
	ArticleID string `json:"article_id"`
	Language  string `json:"language"`
}

// JobHandler processes a job. Implementations are provided by the transcribe
// and content packages.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
