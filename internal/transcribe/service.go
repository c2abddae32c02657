package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podscribe/backend/internal/audio"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/job"
)

// Service manages transcription engines and processes transcription jobs.
type Service struct {
	engines       map[string]Transcriber
	store         *db.Database
	chunkDuration time.Duration
	bitrate       string
}

// NewService creates a transcription service with available engines
func NewService(store *db.Database, chunkDuration time.Duration, bitrate, openAIKey, whisperModel, whisperURL string) *Service {
	if chunkDuration <= 0 {
		chunkDuration = audio.DefaultChunkDuration
	}
	s := &Service{
		engines:       make(map[string]Transcriber),
		store:         store,
		chunkDuration: chunkDuration,
		bitrate:       bitrate,
	}

	if openAIKey != "" {
		s.engines["openai"] = NewOpenAIClient(openAIKey, whisperModel)
		log.Info().Msgf("[whisper] registered OpenAI Whisper engine")
	}

	if whisperURL != "" {
		s.engines["whisper.cpp"] = NewServerClient(whisperURL)
		log.Info().Msgf("[whisper] registered whisper.cpp engine at %s", whisperURL)
	}

	return s
}

// RegisterEngine adds an engine (e.g., a self-hosted backend)
func (s *Service) RegisterEngine(name string, engine Transcriber) {
	s.engines[name] = engine
	log.Info().Msgf("[whisper] registered %s engine", name)
}

// HandleJob processes a transcription job: decode the upload, partition and
// encode chunks into a scoped workspace, run the pipeline and persist the
// result. Chunk artifacts are released on every exit path.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.TranscribeParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	engineName := params.Engine
	if engineName == "" {
		engineName = "openai"
	}
	engine, ok := s.engines[engineName]
	if !ok {
		return fmt.Errorf("unknown whisper engine: %s (available: %v)", engineName, s.engineNames())
	}

	st, err := os.Stat(j.FilePath)
	if err != nil {
		return fmt.Errorf("file not found: %s", j.FilePath)
	}

	log.Info().Msgf("[whisper] starting transcription: engine=%s file=%s language=%s",
		engineName, filepath.Base(j.FilePath), params.Language)

	buf, err := audio.Load(ctx, j.FilePath)
	if err != nil {
		return fmt.Errorf("load audio: %w", err)
	}

	ws, err := audio.NewWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	// Only partition when the source file is past the API's request ceiling;
	// small files go through as a single chunk.
	spans := []audio.Span{{Start: 0, End: buf.Duration()}}
	if st.Size() > audio.MaxRequestBytes {
		spans, err = audio.Partition(buf.Duration(), s.chunkDuration)
		if err != nil {
			return fmt.Errorf("partition audio: %w", err)
		}
	}

	writer := audio.NewWriter(ws, s.bitrate)
	chunks, writeErrs := writer.WriteChunks(ctx, buf, spans)
	if len(writeErrs) > 0 {
		log.Warn().Msgf("[whisper] %d of %d chunks failed to encode", len(writeErrs), len(spans))
	}

	pipeline := NewPipeline(engine)
	result, err := pipeline.Transcribe(ctx, chunks, RunOptions{
		Language: params.Language,
		Prompt:   params.Prompt,
		Progress: func(fraction float64, message string) {
			updateProgress(fraction)
			log.Debug().Msgf("[whisper] %s", message)
		},
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("all %d chunks failed to transcribe", result.TotalChunks)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	transcript := &models.Transcript{
		ID:       uuid.New().String(),
		UploadID: params.UploadID,
		Language: result.Language,
		Text:     result.Text,
		Payload:  payload,
	}
	if err := s.store.SaveTranscript(transcript); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}

	log.Info().Msgf("[whisper] transcription complete: transcript=%s chunks=%d/%d",
		transcript.ID, result.SuccessfulChunks, result.TotalChunks)

	resultJSON, _ := json.Marshal(job.TranscribeResult{
		TranscriptID:     transcript.ID,
		Language:         result.Language,
		TotalChunks:      result.TotalChunks,
		SuccessfulChunks: result.SuccessfulChunks,
		FailedChunks:     result.FailedChunks,
	})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}

func (s *Service) engineNames() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	return names
}
