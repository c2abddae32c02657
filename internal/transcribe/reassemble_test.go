package transcribe

import (
	"encoding/json"
	"strings"
	"testing"
)

func chunkWithSegments(index int, duration float64, texts ...string) ChunkResult {
	segments := make([]Segment, len(texts))
	for i, text := range texts {
		segments[i] = Segment{Start: float64(i * 10), End: float64(i*10 + 5), Text: text}
	}
	return ChunkResult{
		Index:    index,
		Text:     strings.Join(texts, " "),
		Language: "en",
		Duration: duration,
		Segments: segments,
	}
}

func TestReassembleOffsets(t *testing.T) {
	results := []ChunkResult{
		chunkWithSegments(0, 300, "first"),
		chunkWithSegments(1, 300, "second"),
		chunkWithSegments(2, 120, "third"),
	}

	final := Reassemble(results)

	if !final.Success {
		t.Fatal("expected success")
	}
	if final.Text != "first second third" {
		t.Errorf("Text = %q", final.Text)
	}
	wantStarts := []float64{0, 300, 600}
	if len(final.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(final.Segments))
	}
	for i, seg := range final.Segments {
		if seg.Start != wantStarts[i] {
			t.Errorf("segment %d start = %v, want %v", i, seg.Start, wantStarts[i])
		}
	}
	if final.TotalDuration == nil || *final.TotalDuration != 720 {
		t.Errorf("TotalDuration = %v, want 720", final.TotalDuration)
	}
}

func TestReassembleSortsByIndex(t *testing.T) {
	results := []ChunkResult{
		chunkWithSegments(2, 120, "third"),
		chunkWithSegments(0, 300, "first"),
		chunkWithSegments(1, 300, "second"),
	}

	final := Reassemble(results)

	if final.Text != "first second third" {
		t.Errorf("Text = %q, want index order regardless of arrival order", final.Text)
	}
	if final.Segments[len(final.Segments)-1].Start != 600 {
		t.Errorf("last segment start = %v, want 600", final.Segments[len(final.Segments)-1].Start)
	}
}

func TestReassemblePartialFailure(t *testing.T) {
	results := []ChunkResult{
		chunkWithSegments(0, 300, "first"),
		{Index: 1, Err: "timeout"},
		chunkWithSegments(2, 120, "third"),
	}

	final := Reassemble(results)

	if !final.Success {
		t.Fatal("partial failure must still succeed")
	}
	if final.TotalChunks != 3 || final.SuccessfulChunks != 2 || final.FailedChunks != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1",
			final.TotalChunks, final.SuccessfulChunks, final.FailedChunks)
	}
	if final.ChunkErrors != nil {
		t.Error("ChunkErrors must only be present on total failure")
	}
	if final.Text != "first third" {
		t.Errorf("Text = %q", final.Text)
	}
	// Failed chunk contributes no duration, so chunk 2 starts at 300
	if final.Segments[1].Start != 300 {
		t.Errorf("segment after failed chunk starts at %v, want 300", final.Segments[1].Start)
	}
}

func TestReassembleTotalFailure(t *testing.T) {
	results := []ChunkResult{
		{Index: 0, Err: "rate limited"},
		{Index: 1, Err: "timeout"},
	}

	final := Reassemble(results)

	if final.Success {
		t.Fatal("expected failure result")
	}
	if final.Language != "unknown" {
		t.Errorf("Language = %q, want unknown", final.Language)
	}
	if final.Segments == nil || len(final.Segments) != 0 {
		t.Errorf("Segments = %v, want empty non-nil slice", final.Segments)
	}
	if len(final.ChunkErrors) != 2 {
		t.Fatalf("got %d chunk errors, want 2", len(final.ChunkErrors))
	}
	if final.ChunkErrors[0].Index != 0 || final.ChunkErrors[0].Error != "rate limited" {
		t.Errorf("first chunk error = %+v", final.ChunkErrors[0])
	}
	if final.TotalDuration != nil {
		t.Errorf("TotalDuration = %v, want nil", *final.TotalDuration)
	}
}

func TestReassembleMissingDuration(t *testing.T) {
	noDuration := chunkWithSegments(0, 0, "first")
	results := []ChunkResult{
		noDuration,
		chunkWithSegments(1, 300, "second"),
	}

	final := Reassemble(results)

	// A chunk with segments but no reported duration does not advance the
	// offset; the next chunk's timestamps land early.
	if final.Segments[1].Start != 0 {
		t.Errorf("second chunk segment start = %v, want 0", final.Segments[1].Start)
	}
}

func TestReassembleEmptyChunkSkipsOffset(t *testing.T) {
	silent := ChunkResult{Index: 0, Language: "en", Duration: 300}
	results := []ChunkResult{
		silent,
		chunkWithSegments(1, 300, "second"),
	}

	final := Reassemble(results)

	// A silent chunk reports a duration but no segments; the offset does not
	// advance for it.
	if final.Segments[0].Start != 0 {
		t.Errorf("segment start = %v, want 0", final.Segments[0].Start)
	}
	if final.Text != "second" {
		t.Errorf("Text = %q", final.Text)
	}
}

func TestReassembleDeterministic(t *testing.T) {
	results := []ChunkResult{
		chunkWithSegments(1, 300, "second"),
		{Index: 2, Err: "timeout"},
		chunkWithSegments(0, 300, "first"),
	}

	a, _ := json.Marshal(Reassemble(results))
	b, _ := json.Marshal(Reassemble(results))
	if string(a) != string(b) {
		t.Error("reassembly of the same input must be byte-identical")
	}
}

func TestTranscriptResultJSON(t *testing.T) {
	final := Reassemble([]ChunkResult{chunkWithSegments(0, 60, "hello")})
	raw, err := json.Marshal(final)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"success", "text", "language", "segments", "total_chunks", "successful_chunks", "failed_chunks", "total_duration"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in result JSON", key)
		}
	}
	if _, ok := decoded["chunk_errors"]; ok {
		t.Error("chunk_errors must be omitted on success")
	}
}
