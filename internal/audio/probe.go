package audio

import (
	"encoding/json"
	"os/exec"
	"strconv"
)

type probeResult struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
}

// FileInfo is container-level metadata read without decoding the stream.
type FileInfo struct {
	Duration   float64 `json:"duration"`
	SizeBytes  int64   `json:"size_bytes"`
	BitRate    int64   `json:"bit_rate"`
	Codec      string  `json:"codec"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
}

// Probe reads audio metadata via ffprobe.
func Probe(filePath string) (*FileInfo, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, err
	}

	info := &FileInfo{}
	info.Duration, _ = strconv.ParseFloat(result.Format.Duration, 64)
	info.SizeBytes, _ = strconv.ParseInt(result.Format.Size, 10, 64)
	info.BitRate, _ = strconv.ParseInt(result.Format.BitRate, 10, 64)

	for _, s := range result.Streams {
		if s.CodecType != "audio" {
			continue
		}
		info.Codec = s.CodecName
		info.Channels = s.Channels
		info.SampleRate, _ = strconv.Atoi(s.SampleRate)
		break
	}

	return info, nil
}
