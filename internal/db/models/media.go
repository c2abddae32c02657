package models

import (
	"encoding/json"
	"time"
)

// Upload is one stored audio file awaiting or holding transcriptions.
type Upload struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`  // original upload name
	FilePath  string    `json:"file_path"` // full path of the stored copy
	SizeBytes int64     `json:"size_bytes"`
	Duration  float64   `json:"duration"` // seconds, from ffprobe
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the persisted output of one pipeline run. Payload holds the
// full serialized TranscriptResult (segments, counters, timings); Text is
// duplicated for cheap listing and search.
type Transcript struct {
	ID        string          `json:"id"`
	UploadID  string          `json:"upload_id"`
	Language  string          `json:"language"`
	Text      string          `json:"text"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Article is generated or translated content derived from a transcript.
type Article struct {
	ID           string    `json:"id"`
	TranscriptID string    `json:"transcript_id"`
	Title        string    `json:"title"`
	Style        string    `json:"style"`    // "long" or "short"
	Language     string    `json:"language"` // ISO code
	Content      string    `json:"content"`  // markdown
	CreatedAt    time.Time `json:"created_at"`
}
