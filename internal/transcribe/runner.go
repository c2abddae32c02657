package transcribe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/podscribe/backend/internal/audio"
)

// ProgressFunc receives best-effort progress updates. It is called
// synchronously from the runner; panics are swallowed, so a broken observer
// never aborts a batch.
type ProgressFunc func(fraction float64, message string)

// RunOptions configure one pipeline run.
type RunOptions struct {
	Language string
	Prompt   string
	Progress ProgressFunc
}

// ChunkResult is the outcome of transcribing one chunk. Index carries the
// chunk's emission order and is the reassembly join key; it must never be
// inferred from list position.
type ChunkResult struct {
	Index    int
	Text     string
	Language string
	Duration float64
	Segments []Segment
	Err      string
}

// Failed reports whether this chunk's transcription failed.
func (r ChunkResult) Failed() bool {
	return r.Err != ""
}

// RunSequential drives every chunk through the engine one at a time, in
// chunk order. Sequential calls are a deliberate reliability choice: they
// avoid the rate-limit and connection contention a concurrent fan-out
// triggers on the backend. A chunk's failure is recorded in its result and
// never aborts the batch.
func RunSequential(ctx context.Context, engine Transcriber, chunks []audio.Chunk, opts RunOptions) []ChunkResult {
	results := make([]ChunkResult, 0, len(chunks))
	total := len(chunks)

	for i, chunk := range chunks {
		notify(opts.Progress, float64(i)/float64(total),
			fmt.Sprintf("Transcribing chunk %d/%d...", i+1, total))

		res, err := engine.Transcribe(ctx, Request{
			Path:     chunk.Path,
			Language: opts.Language,
			Prompt:   opts.Prompt,
		})
		if err != nil {
			log.Warn().Msgf("[whisper] chunk %d failed: %v", chunk.Index, err)
			results = append(results, ChunkResult{Index: chunk.Index, Err: err.Error()})
		} else {
			results = append(results, ChunkResult{
				Index:    chunk.Index,
				Text:     res.Text,
				Language: res.Language,
				Duration: res.Duration,
				Segments: res.Segments,
			})
		}

		notify(opts.Progress, float64(i+1)/float64(total),
			fmt.Sprintf("Transcribed chunk %d/%d", i+1, total))
	}

	return results
}

// notify delivers one progress update, ignoring observer panics.
func notify(fn ProgressFunc, fraction float64, message string) {
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(fraction, message)
}
