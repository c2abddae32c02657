package transcribe

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestPipelineNoChunks(t *testing.T) {
	p := NewPipeline(&fakeEngine{fn: func(req Request) (*Result, error) {
		t.Fatal("engine must not be called")
		return nil, nil
	}})

	_, err := p.Transcribe(context.Background(), nil, RunOptions{})
	if !errors.Is(err, ErrNoChunks) {
		t.Errorf("error = %v, want ErrNoChunks", err)
	}
}

func TestPipelineSingleChunkFastPath(t *testing.T) {
	segments := []Segment{
		{Start: 1.5, End: 4.2, Text: "hello"},
		{Start: 4.2, End: 9.9, Text: "world"},
	}
	p := NewPipeline(&fakeEngine{fn: func(req Request) (*Result, error) {
		return &Result{Text: "hello world", Language: "en", Duration: 12.5, Segments: segments}, nil
	}})

	final, err := p.Transcribe(context.Background(), makeChunks(1), RunOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if !final.Success || final.TotalChunks != 1 || final.SuccessfulChunks != 1 {
		t.Errorf("unexpected result: %+v", final)
	}
	// Raw engine timestamps survive the fast path untouched
	for i, seg := range final.Segments {
		if seg != segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, seg, segments[i])
		}
	}
	if final.TotalDuration == nil || *final.TotalDuration != 12.5 {
		t.Errorf("TotalDuration = %v, want 12.5", final.TotalDuration)
	}
}

func TestPipelineSingleChunkFailure(t *testing.T) {
	p := NewPipeline(&fakeEngine{fn: func(req Request) (*Result, error) {
		return nil, fmt.Errorf("connection refused")
	}})

	final, err := p.Transcribe(context.Background(), makeChunks(1), RunOptions{})
	if err != nil {
		t.Fatalf("engine failure must not propagate as an error, got %v", err)
	}

	if final.Success {
		t.Fatal("expected failure result")
	}
	if len(final.ChunkErrors) != 1 || final.ChunkErrors[0].Index != 0 {
		t.Errorf("ChunkErrors = %+v", final.ChunkErrors)
	}
	if final.ChunkErrors[0].Error != "connection refused" {
		t.Errorf("chunk error = %q", final.ChunkErrors[0].Error)
	}
}

func TestPipelineMultiChunk(t *testing.T) {
	p := NewPipeline(&fakeEngine{fn: func(req Request) (*Result, error) {
		return &Result{Text: "part", Language: "en", Duration: 600,
			Segments: []Segment{{Start: 0, End: 600, Text: "part"}}}, nil
	}})

	var fractions []float64
	opts := RunOptions{Progress: func(fraction float64, message string) {
		fractions = append(fractions, fraction)
	}}

	final, err := p.Transcribe(context.Background(), makeChunks(3), opts)
	if err != nil {
		t.Fatal(err)
	}

	if final.TotalChunks != 3 || final.SuccessfulChunks != 3 {
		t.Errorf("counts = %d/%d, want 3/3", final.TotalChunks, final.SuccessfulChunks)
	}
	if final.Segments[2].Start != 1200 {
		t.Errorf("third chunk segment start = %v, want 1200", final.Segments[2].Start)
	}

	if len(fractions) == 0 {
		t.Fatal("no progress updates")
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("progress went backwards: %v -> %v", fractions[i-1], fractions[i])
		}
	}
	for _, f := range fractions {
		if f < 0 || f > 1 {
			t.Errorf("fraction %v out of range", f)
		}
	}
	if last := fractions[len(fractions)-1]; last != 1.0 {
		t.Errorf("final fraction = %v, want 1.0", last)
	}
}
