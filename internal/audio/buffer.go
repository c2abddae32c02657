package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Buffer holds decoded PCM audio for one upload. It is immutable once loaded;
// the pipeline only reads from it.
type Buffer struct {
	pcm         *goaudio.IntBuffer
	sampleWidth int // bytes per sample

	infoOnce sync.Once
	info     Info
}

// Info is a read-only snapshot of a decoded buffer.
type Info struct {
	DurationSeconds float64 `json:"duration_seconds"`
	DurationMinutes float64 `json:"duration_minutes"`
	Channels        int     `json:"channels"`
	SampleWidth     int     `json:"sample_width"`
	FrameRate       int     `json:"frame_rate"`
	SizeBytes       int64   `json:"size_bytes"`
}

// Load decodes an audio file (MP3, WAV, M4A, OGG, anything FFmpeg reads)
// into a normalized 16-bit PCM buffer. The source sample rate and channel
// layout are preserved.
func Load(ctx context.Context, path string) (*Buffer, error) {
	wavPath, err := decodeToWAV(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	defer os.Remove(wavPath)

	f, err := os.Open(wavPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav produced for %s", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels == 0 || pcm.Format.SampleRate == 0 {
		return nil, fmt.Errorf("missing pcm format for %s", path)
	}

	return &Buffer{pcm: pcm, sampleWidth: int(dec.BitDepth) / 8}, nil
}

// NewBuffer wraps an already-decoded PCM buffer. Used by tests and by
// callers that synthesize audio in memory.
func NewBuffer(pcm *goaudio.IntBuffer, sampleWidth int) *Buffer {
	return &Buffer{pcm: pcm, sampleWidth: sampleWidth}
}

// Duration returns the total length of the buffer.
func (b *Buffer) Duration() time.Duration {
	frames := len(b.pcm.Data) / b.pcm.Format.NumChannels
	return time.Duration(frames) * time.Second / time.Duration(b.pcm.Format.SampleRate)
}

// Info returns the cached metadata snapshot, computing it on first use.
func (b *Buffer) Info() Info {
	b.infoOnce.Do(func() {
		d := b.Duration()
		b.info = Info{
			DurationSeconds: d.Seconds(),
			DurationMinutes: d.Minutes(),
			Channels:        b.pcm.Format.NumChannels,
			SampleWidth:     b.sampleWidth,
			FrameRate:       b.pcm.Format.SampleRate,
			SizeBytes:       int64(len(b.pcm.Data)) * int64(b.sampleWidth),
		}
	})
	return b.info
}

// Slice returns the PCM samples covering span. The returned buffer shares
// the underlying sample data and must not be modified.
func (b *Buffer) Slice(span Span) *goaudio.IntBuffer {
	ch := b.pcm.Format.NumChannels
	rate := int64(b.pcm.Format.SampleRate)
	totalFrames := int64(len(b.pcm.Data) / ch)

	startFrame := int64(span.Start) * rate / int64(time.Second)
	endFrame := int64(span.End) * rate / int64(time.Second)
	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame > totalFrames {
		endFrame = totalFrames
	}
	if startFrame > endFrame {
		startFrame = endFrame
	}

	return &goaudio.IntBuffer{
		Format:         b.pcm.Format,
		SourceBitDepth: 16,
		Data:           b.pcm.Data[startFrame*int64(ch) : endFrame*int64(ch)],
	}
}

// decodeToWAV converts any FFmpeg-readable input to 16-bit PCM WAV,
// preserving sample rate and channels.
func decodeToWAV(ctx context.Context, inputPath string) (string, error) {
	tmpFile, err := os.CreateTemp("", "podscribe-decode-*.wav")
	if err != nil {
		return "", err
	}
	tmpFile.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-y",
		tmpFile.Name(),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}

	return tmpFile.Name(), nil
}
