package transcribe

import (
	"context"
	"fmt"
	"testing"

	"github.com/podscribe/backend/internal/audio"
)

// fakeEngine routes each Transcribe call through fn.
type fakeEngine struct {
	fn func(req Request) (*Result, error)
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	return f.fn(req)
}

func makeChunks(n int) []audio.Chunk {
	chunks := make([]audio.Chunk, n)
	for i := range chunks {
		chunks[i] = audio.Chunk{Index: i, Path: fmt.Sprintf("/tmp/chunk_%03d.mp3", i)}
	}
	return chunks
}

func TestRunSequentialOrderAndIndices(t *testing.T) {
	var calls []string
	engine := &fakeEngine{fn: func(req Request) (*Result, error) {
		calls = append(calls, req.Path)
		return &Result{Text: "text for " + req.Path, Duration: 10}, nil
	}}

	chunks := makeChunks(4)
	results := RunSequential(context.Background(), engine, chunks, RunOptions{})

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
		if r.Failed() {
			t.Errorf("result %d unexpectedly failed: %s", i, r.Err)
		}
	}
	for i, path := range calls {
		if path != chunks[i].Path {
			t.Errorf("call %d used %s, want %s", i, path, chunks[i].Path)
		}
	}
}

func TestRunSequentialFailureIsolation(t *testing.T) {
	engine := &fakeEngine{fn: func(req Request) (*Result, error) {
		if req.Path == "/tmp/chunk_001.mp3" {
			return nil, fmt.Errorf("backend unavailable")
		}
		return &Result{Text: "ok"}, nil
	}}

	results := RunSequential(context.Background(), engine, makeChunks(3), RunOptions{})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[1].Failed() {
		t.Error("chunk 1 should have failed")
	}
	if results[1].Err != "backend unavailable" {
		t.Errorf("chunk 1 error = %q", results[1].Err)
	}
	if results[0].Failed() || results[2].Failed() {
		t.Error("neighbouring chunks must not be affected by chunk 1's failure")
	}
}

func TestRunSequentialProgress(t *testing.T) {
	engine := &fakeEngine{fn: func(req Request) (*Result, error) {
		return &Result{Text: "ok"}, nil
	}}

	var fractions []float64
	opts := RunOptions{Progress: func(fraction float64, message string) {
		fractions = append(fractions, fraction)
	}}

	RunSequential(context.Background(), engine, makeChunks(5), opts)

	if len(fractions) != 10 {
		t.Fatalf("got %d progress updates, want 10", len(fractions))
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("progress went backwards: %v -> %v", fractions[i-1], fractions[i])
		}
	}
	if last := fractions[len(fractions)-1]; last != 1.0 {
		t.Errorf("final fraction = %v, want 1.0", last)
	}
}

func TestRunSequentialObserverPanicSwallowed(t *testing.T) {
	engine := &fakeEngine{fn: func(req Request) (*Result, error) {
		return &Result{Text: "ok"}, nil
	}}

	opts := RunOptions{Progress: func(fraction float64, message string) {
		panic("broken observer")
	}}

	results := RunSequential(context.Background(), engine, makeChunks(2), opts)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Failed() {
			t.Errorf("chunk %d failed: %s", r.Index, r.Err)
		}
	}
}
