package transcribe

import "context"

// Segment is a timestamped text span. Until reassembly its timestamps are
// relative to the owning chunk's local clock.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Request is the input for one transcription call.
type Request struct {
	Path     string // path to the encoded audio artifact
	Language string // ISO code hint, "" or "auto" for detection
	Prompt   string // optional context prompt for better accuracy
}

// Result is the output of one transcription call. Segments and Duration are
// optional capabilities: engines that do not report them leave Segments nil
// and Duration zero.
type Result struct {
	Text     string
	Language string
	Duration float64 // seconds
	Segments []Segment
}

// Transcriber is the common interface for all speech-to-text engines.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
	// Name returns the engine name
	Name() string
}
