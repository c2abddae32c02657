package transcribe

import (
	"sort"
	"strings"
)

// ChunkError identifies one failed chunk in a total-failure result.
type ChunkError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// TranscriptResult is the pipeline's externally visible output shape.
// TotalDuration is null when no successful chunk reported a duration;
// ChunkErrors is present only when every chunk failed.
type TranscriptResult struct {
	Success          bool         `json:"success"`
	Text             string       `json:"text"`
	Language         string       `json:"language"`
	Segments         []Segment    `json:"segments"`
	TotalChunks      int          `json:"total_chunks"`
	SuccessfulChunks int          `json:"successful_chunks"`
	FailedChunks     int          `json:"failed_chunks"`
	TotalDuration    *float64     `json:"total_duration"`
	ChunkErrors      []ChunkError `json:"chunk_errors,omitempty"`
}

// Reassemble merges per-chunk results into one continuous transcript. Chunks
// are merged in index order, never arrival order: the sequential runner makes
// the two coincide today, but a concurrent runner would not.
func Reassemble(results []ChunkResult) *TranscriptResult {
	ordered := make([]ChunkResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	var successes, failures []ChunkResult
	for _, r := range ordered {
		if r.Failed() {
			failures = append(failures, r)
		} else {
			successes = append(successes, r)
		}
	}

	if len(successes) == 0 {
		chunkErrors := make([]ChunkError, 0, len(failures))
		for _, r := range failures {
			chunkErrors = append(chunkErrors, ChunkError{Index: r.Index, Error: r.Err})
		}
		return &TranscriptResult{
			Success:      false,
			Language:     "unknown",
			Segments:     []Segment{},
			TotalChunks:  len(results),
			FailedChunks: len(failures),
			ChunkErrors:  chunkErrors,
		}
	}

	var parts []string
	segments := []Segment{}
	var offset float64

	for _, chunk := range successes {
		if chunk.Text != "" {
			parts = append(parts, chunk.Text)
		}
		if len(chunk.Segments) == 0 {
			continue
		}
		for _, s := range chunk.Segments {
			segments = append(segments, Segment{
				Start: s.Start + offset,
				End:   s.End + offset,
				Text:  s.Text,
			})
		}
		// Known approximation: the offset only advances when the chunk
		// reports a duration, so a chunk with segments but no duration
		// leaves later chunks' timestamps shifted short.
		if chunk.Duration > 0 {
			offset += chunk.Duration
		}
	}

	language := successes[0].Language
	if language == "" {
		language = "unknown"
	}

	var totalDuration *float64
	if offset > 0 {
		d := offset
		totalDuration = &d
	}

	return &TranscriptResult{
		Success:          true,
		Text:             strings.Join(parts, " "),
		Language:         language,
		Segments:         segments,
		TotalChunks:      len(results),
		SuccessfulChunks: len(successes),
		FailedChunks:     len(failures),
		TotalDuration:    totalDuration,
	}
}
