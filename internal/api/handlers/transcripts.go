package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/export"
	"github.com/podscribe/backend/internal/job"
	"github.com/podscribe/backend/internal/transcribe"
)

type TranscriptsHandler struct {
	db    *db.Database
	queue *job.JobQueue
}

func NewTranscriptsHandler(database *db.Database, queue *job.JobQueue) *TranscriptsHandler {
	return &TranscriptsHandler{db: database, queue: queue}
}

type transcribeRequest struct {
	Engine   string `json:"engine"`
	Language string `json:"language"`
	Prompt   string `json:"prompt"`
}

// Start enqueues a transcription job for an upload.
func (h *TranscriptsHandler) Start(w http.ResponseWriter, r *http.Request) {
	upload, err := h.db.GetUpload(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "upload not found", http.StatusNotFound)
		return
	}

	var req transcribeRequest
	if r.Body != nil {
		// Body is optional; defaults apply
		json.NewDecoder(r.Body).Decode(&req)
	}

	j, err := h.queue.Enqueue(job.JobTranscribe, upload.FilePath, job.TranscribeParams{
		UploadID: upload.ID,
		Engine:   req.Engine,
		Language: req.Language,
		Prompt:   req.Prompt,
	})
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

func (h *TranscriptsHandler) List(w http.ResponseWriter, r *http.Request) {
	transcripts, err := h.db.ListTranscripts()
	if err != nil {
		jsonError(w, "failed to list transcripts", http.StatusInternalServerError)
		return
	}
	if transcripts == nil {
		transcripts = []*models.Transcript{}
	}
	jsonResponse(w, transcripts, http.StatusOK)
}

func (h *TranscriptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.db.GetTranscript(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "transcript not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, t, http.StatusOK)
}

func (h *TranscriptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteTranscript(chi.URLParam(r, "id")); err != nil {
		jsonError(w, "failed to delete transcript", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export serves a transcript as txt, json, srt or vtt.
func (h *TranscriptsHandler) Export(w http.ResponseWriter, r *http.Request) {
	t, err := h.db.GetTranscript(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "transcript not found", http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "txt"
	}

	switch format {
	case "txt":
		serveDownload(w, t.ID+".txt", "text/plain; charset=utf-8", []byte(t.Text))
	case "json":
		serveDownload(w, t.ID+".json", "application/json", t.Payload)
	case "srt", "vtt":
		var result transcribe.TranscriptResult
		if err := json.Unmarshal(t.Payload, &result); err != nil {
			jsonError(w, "corrupt transcript payload", http.StatusInternalServerError)
			return
		}
		if format == "srt" {
			serveDownload(w, t.ID+".srt", "application/x-subrip", []byte(export.SegmentsToSRT(result.Segments)))
		} else {
			serveDownload(w, t.ID+".vtt", "text/vtt", []byte(export.SegmentsToVTT(result.Segments)))
		}
	default:
		jsonError(w, "unsupported format: "+format, http.StatusBadRequest)
	}
}

func serveDownload(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(body)
}
