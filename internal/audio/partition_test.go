package audio

import (
	"errors"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		total time.Duration
		max   time.Duration
		want  []Span
	}{
		{
			name:  "zero total",
			total: 0,
			max:   10 * time.Minute,
			want:  nil,
		},
		{
			name:  "under bound",
			total: 7 * time.Minute,
			max:   10 * time.Minute,
			want:  []Span{{0, 7 * time.Minute}},
		},
		{
			name:  "exactly bound",
			total: 10 * time.Minute,
			max:   10 * time.Minute,
			want:  []Span{{0, 10 * time.Minute}},
		},
		{
			name:  "uneven tail",
			total: 25 * time.Minute,
			max:   10 * time.Minute,
			want: []Span{
				{0, 10 * time.Minute},
				{10 * time.Minute, 20 * time.Minute},
				{20 * time.Minute, 25 * time.Minute},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Partition(tt.total, tt.max)
			if err != nil {
				t.Fatalf("Partition() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d spans, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPartitionInvalidBound(t *testing.T) {
	for _, max := range []time.Duration{0, -time.Minute} {
		if _, err := Partition(time.Hour, max); !errors.Is(err, ErrInvalidChunkDuration) {
			t.Errorf("Partition(1h, %v) error = %v, want ErrInvalidChunkDuration", max, err)
		}
	}
}

func TestPartitionGapless(t *testing.T) {
	total := 73*time.Minute + 17*time.Second
	max := 10 * time.Minute

	spans, err := Partition(total, max)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}

	if spans[0].Start != 0 {
		t.Errorf("first span starts at %v, want 0", spans[0].Start)
	}
	if spans[len(spans)-1].End != total {
		t.Errorf("last span ends at %v, want %v", spans[len(spans)-1].End, total)
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start != spans[i-1].End {
			t.Errorf("gap between span %d and %d: %v != %v", i-1, i, spans[i-1].End, spans[i].Start)
		}
	}
	for i, s := range spans {
		if s.Duration() <= 0 || s.Duration() > max {
			t.Errorf("span %d has duration %v, want in (0, %v]", i, s.Duration(), max)
		}
	}
}

func testBuffer(t *testing.T, seconds, rate, channels int) *Buffer {
	t.Helper()
	data := make([]int, seconds*rate*channels)
	for i := range data {
		data[i] = i % 32768
	}
	return NewBuffer(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           data,
	}, 2)
}

func TestBufferDuration(t *testing.T) {
	buf := testBuffer(t, 120, 1000, 2)
	if got := buf.Duration(); got != 2*time.Minute {
		t.Errorf("Duration() = %v, want 2m", got)
	}
}

func TestBufferInfo(t *testing.T) {
	buf := testBuffer(t, 60, 8000, 1)
	info := buf.Info()

	if info.DurationSeconds != 60 {
		t.Errorf("DurationSeconds = %v, want 60", info.DurationSeconds)
	}
	if info.DurationMinutes != 1 {
		t.Errorf("DurationMinutes = %v, want 1", info.DurationMinutes)
	}
	if info.Channels != 1 || info.FrameRate != 8000 || info.SampleWidth != 2 {
		t.Errorf("unexpected format info: %+v", info)
	}
	if info.SizeBytes != int64(60*8000*2) {
		t.Errorf("SizeBytes = %d, want %d", info.SizeBytes, 60*8000*2)
	}
}

func TestBufferSlice(t *testing.T) {
	buf := testBuffer(t, 10, 1000, 2)

	got := buf.Slice(Span{Start: 2 * time.Second, End: 5 * time.Second})
	if len(got.Data) != 3*1000*2 {
		t.Errorf("slice has %d samples, want %d", len(got.Data), 3*1000*2)
	}

	// Slice shares the backing data
	if &got.Data[0] != &buf.pcm.Data[2*1000*2] {
		t.Error("slice does not share backing data")
	}
}

func TestBufferSliceClamps(t *testing.T) {
	buf := testBuffer(t, 5, 1000, 1)

	got := buf.Slice(Span{Start: 4 * time.Second, End: 9 * time.Second})
	if len(got.Data) != 1000 {
		t.Errorf("clamped slice has %d samples, want 1000", len(got.Data))
	}

	empty := buf.Slice(Span{Start: 7 * time.Second, End: 9 * time.Second})
	if len(empty.Data) != 0 {
		t.Errorf("out-of-range slice has %d samples, want 0", len(empty.Data))
	}
}
