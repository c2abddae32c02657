package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/rs/zerolog/log"
)

// Workspace is the ephemeral storage for one pipeline run's chunk artifacts.
// The caller that creates it owns cleanup and must Close it on every exit
// path; chunks written into it are invalid afterwards.
type Workspace struct {
	dir string
}

// NewWorkspace allocates a fresh temp directory for chunk artifacts.
func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "podscribe-chunks-*")
	if err != nil {
		return nil, fmt.Errorf("create chunk workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Close removes the workspace and every artifact in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

// Chunk is one materialized audio slice queued for transcription. Index
// matches emission order and is the reassembly join key downstream.
type Chunk struct {
	Index int
	Start time.Duration
	End   time.Duration
	Path  string
}

// Duration returns the length of the chunk's source span.
func (c Chunk) Duration() time.Duration {
	return c.End - c.Start
}

// WriteError records a span that failed to encode.
type WriteError struct {
	Span Span
	Err  error
}

// Writer encodes buffer slices into MP3 artifacts at a fixed bitrate.
type Writer struct {
	ws      *Workspace
	bitrate string
}

// NewWriter creates a writer targeting ws. An empty bitrate uses the default.
func NewWriter(ws *Workspace, bitrate string) *Writer {
	if bitrate == "" {
		bitrate = DefaultBitrate
	}
	return &Writer{ws: ws, bitrate: bitrate}
}

// WriteChunk encodes the slice of buf covering span into an MP3 artifact.
func (w *Writer) WriteChunk(ctx context.Context, buf *Buffer, span Span, index int) (Chunk, error) {
	outPath := filepath.Join(w.ws.Dir(), fmt.Sprintf("chunk_%03d.mp3", index))
	if err := encodeMP3(ctx, buf.Slice(span), outPath, w.bitrate); err != nil {
		return Chunk{}, err
	}
	return Chunk{Index: index, Start: span.Start, End: span.End, Path: outPath}, nil
}

// WriteChunks materializes every span in order. A span that fails to encode
// is reported in the second return value and skipped; sibling spans still
// proceed. Returned chunks are re-stamped with consecutive indices so the
// runner always sees the exact set {0..N-1}.
func (w *Writer) WriteChunks(ctx context.Context, buf *Buffer, spans []Span) ([]Chunk, []WriteError) {
	var chunks []Chunk
	var failed []WriteError

	for _, span := range spans {
		chunk, err := w.WriteChunk(ctx, buf, span, len(chunks))
		if err != nil {
			log.Warn().Msgf("[audio] chunk encode failed for %s-%s: %v", span.Start, span.End, err)
			failed = append(failed, WriteError{Span: span, Err: err})
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks, failed
}

// encodeMP3 pipes raw s16le samples into FFmpeg and writes an MP3 at the
// given bitrate.
func encodeMP3(ctx context.Context, pcm *goaudio.IntBuffer, outPath, bitrate string) error {
	raw := make([]byte, len(pcm.Data)*2)
	for i, s := range pcm.Data {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(s)))
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "s16le",
		"-ar", strconv.Itoa(pcm.Format.SampleRate),
		"-ac", strconv.Itoa(pcm.Format.NumChannels),
		"-i", "pipe:0",
		"-c:a", "libmp3lame",
		"-b:a", bitrate,
		"-y",
		outPath,
	)
	cmd.Stdin = bytes.NewReader(raw)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}
	return nil
}
