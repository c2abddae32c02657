package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/podscribe/backend/internal/audio"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/storage"
)

// maxUploadBytes caps a single audio upload at 2 GiB.
const maxUploadBytes = 2 << 30

type UploadsHandler struct {
	db    *db.Database
	store *storage.UploadStore
}

func NewUploadsHandler(database *db.Database, store *storage.UploadStore) *UploadsHandler {
	return &UploadsHandler{db: database, store: store}
}

// Upload accepts a multipart audio file and registers it for transcription.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	id, path, size, err := h.store.Save(header.Filename, file)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	upload := &models.Upload{
		ID:        id,
		Filename:  header.Filename,
		FilePath:  path,
		SizeBytes: size,
	}

	// Duration is cosmetic at this point; the pipeline probes again before
	// chunking. A file ffprobe cannot read is still rejected here.
	info, err := audio.Probe(path)
	if err != nil {
		h.store.Remove(path)
		jsonError(w, "unreadable audio file: "+err.Error(), http.StatusBadRequest)
		return
	}
	upload.Duration = info.Duration

	if err := h.db.CreateUpload(upload); err != nil {
		h.store.Remove(path)
		jsonError(w, "failed to save upload", http.StatusInternalServerError)
		return
	}

	log.Info().Msgf("[api] upload %s: %s (%d bytes, %.1fs)", id, header.Filename, size, info.Duration)
	jsonResponse(w, upload, http.StatusCreated)
}

func (h *UploadsHandler) List(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.db.ListUploads()
	if err != nil {
		jsonError(w, "failed to list uploads", http.StatusInternalServerError)
		return
	}
	if uploads == nil {
		uploads = []*models.Upload{}
	}
	jsonResponse(w, uploads, http.StatusOK)
}

func (h *UploadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	upload, err := h.db.GetUpload(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "upload not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, upload, http.StatusOK)
}

func (h *UploadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	upload, err := h.db.GetUpload(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "upload not found", http.StatusNotFound)
		return
	}

	if err := h.store.Remove(upload.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Msgf("[api] failed to remove upload file %s: %v", upload.FilePath, err)
	}
	if err := h.db.DeleteUpload(upload.ID); err != nil {
		jsonError(w, "failed to delete upload", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
