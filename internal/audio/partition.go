package audio

import (
	"errors"
	"time"
)

const (
	// DefaultChunkDuration keeps a 128kbps MP3 chunk safely under the 25MB
	// per-request ceiling of the Whisper API. Duration-based partitioning is
	// an approximation: encoded size is only known after encoding.
	DefaultChunkDuration = 10 * time.Minute

	// DefaultBitrate is the fixed encode bitrate for chunk artifacts.
	DefaultBitrate = "128k"

	// MaxRequestBytes is the per-request upload ceiling of the Whisper API.
	MaxRequestBytes = 25 * 1024 * 1024
)

// ErrInvalidChunkDuration is returned when the partition bound is not positive.
var ErrInvalidChunkDuration = errors.New("max chunk duration must be positive")

// Span is a contiguous time slice [Start, End) of a buffer.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration {
	return s.End - s.Start
}

// Partition splits a total duration into ordered, gapless, non-overlapping
// spans of at most max each. The spans exactly cover [0, total). A zero
// total yields no spans; a total at or under max yields a single span.
func Partition(total, max time.Duration) ([]Span, error) {
	if max <= 0 {
		return nil, ErrInvalidChunkDuration
	}

	var spans []Span
	for start := time.Duration(0); start < total; {
		end := start + max
		if end > total {
			end = total
		}
		spans = append(spans, Span{Start: start, End: end})
		start = end
	}
	return spans, nil
}
