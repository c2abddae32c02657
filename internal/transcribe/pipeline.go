package transcribe

import (
	"context"
	"errors"

	"github.com/podscribe/backend/internal/audio"
)

// ErrNoChunks is returned when a pipeline run is started with no input.
var ErrNoChunks = errors.New("no audio chunks provided")

// Pipeline is the only entry point external callers use. It routes a batch
// of chunk artifacts through the runner and reassembler, or takes the
// single-chunk fast path, and reports the same result shape either way.
// A Pipeline is stateless; each Transcribe call is independent.
type Pipeline struct {
	engine Transcriber
}

// NewPipeline creates a pipeline backed by the given engine.
func NewPipeline(engine Transcriber) *Pipeline {
	return &Pipeline{engine: engine}
}

// Transcribe runs the batch. Only a structural input error propagates as an
// error; per-chunk failures are folded into the result, and a run where
// every chunk failed comes back with Success=false and per-chunk errors.
func (p *Pipeline) Transcribe(ctx context.Context, chunks []audio.Chunk, opts RunOptions) (*TranscriptResult, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	if len(chunks) == 1 {
		return p.transcribeSingle(ctx, chunks[0], opts)
	}

	notify(opts.Progress, 0.05, "Starting transcription...")

	// Runner fractions are processed/total; scale them into [0.05, 0.9] so
	// the reassembly step still moves the bar forward.
	inner := opts
	if opts.Progress != nil {
		outer := opts.Progress
		inner.Progress = func(fraction float64, message string) {
			outer(0.05+0.85*fraction, message)
		}
	}

	results := RunSequential(ctx, p.engine, chunks, inner)

	notify(opts.Progress, 0.95, "Reassembling transcription...")
	final := Reassemble(results)

	notify(opts.Progress, 1.0, "Transcription complete!")
	return final, nil
}

// transcribeSingle bypasses the runner and reassembler for a one-chunk run,
// preserving the engine's native segment timestamps unmodified.
func (p *Pipeline) transcribeSingle(ctx context.Context, chunk audio.Chunk, opts RunOptions) (*TranscriptResult, error) {
	notify(opts.Progress, 0.5, "Transcribing audio...")

	res, err := p.engine.Transcribe(ctx, Request{
		Path:     chunk.Path,
		Language: opts.Language,
		Prompt:   opts.Prompt,
	})
	if err != nil {
		return &TranscriptResult{
			Success:      false,
			Language:     "unknown",
			Segments:     []Segment{},
			TotalChunks:  1,
			FailedChunks: 1,
			ChunkErrors:  []ChunkError{{Index: 0, Error: err.Error()}},
		}, nil
	}

	language := res.Language
	if language == "" {
		language = "unknown"
	}
	segments := res.Segments
	if segments == nil {
		segments = []Segment{}
	}
	var totalDuration *float64
	if res.Duration > 0 {
		d := res.Duration
		totalDuration = &d
	}

	notify(opts.Progress, 1.0, "Transcription complete!")

	return &TranscriptResult{
		Success:          true,
		Text:             res.Text,
		Language:         language,
		Segments:         segments,
		TotalChunks:      1,
		SuccessfulChunks: 1,
		TotalDuration:    totalDuration,
	}, nil
}
