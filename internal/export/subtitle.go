package export

import (
	"fmt"
	"strings"

	"github.com/podscribe/backend/internal/transcribe"
)

// SegmentsToVTT renders transcript segments as a WebVTT file.
func SegmentsToVTT(segments []transcribe.Segment) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for i, seg := range segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(seg.Start, "."), formatTimestamp(seg.End, ".")))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// SegmentsToSRT renders transcript segments as a SubRip file.
func SegmentsToSRT(segments []transcribe.Segment) string {
	var sb strings.Builder

	for i, seg := range segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatTimestamp(seg.Start, ","), formatTimestamp(seg.End, ",")))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// formatTimestamp renders seconds as HH:MM:SS<sep>mmm. VTT uses a dot
// separator, SRT a comma.
func formatTimestamp(seconds float64, sep string) string {
	totalMs := int(seconds * 1000)
	if totalMs < 0 {
		totalMs = 0
	}
	h := totalMs / 3600000
	totalMs %= 3600000
	m := totalMs / 60000
	totalMs %= 60000
	s := totalMs / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms)
}
