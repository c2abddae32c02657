package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podscribe/backend/internal/content"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/db/models"
	"github.com/podscribe/backend/internal/export"
	"github.com/podscribe/backend/internal/job"
)

type ArticlesHandler struct {
	db    *db.Database
	queue *job.JobQueue
}

func NewArticlesHandler(database *db.Database, queue *job.JobQueue) *ArticlesHandler {
	return &ArticlesHandler{db: database, queue: queue}
}

type generateRequest struct {
	Style        string `json:"style"`
	Angle        string `json:"angle"`
	Instructions string `json:"instructions"`
	CorrectFirst bool   `json:"correct_first"`
}

// Generate enqueues article generation from a transcript.
func (h *ArticlesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.db.GetTranscript(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "transcript not found", http.StatusNotFound)
		return
	}

	var req generateRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Style != "" && req.Style != "long" && req.Style != "short" {
		jsonError(w, "style must be 'long' or 'short'", http.StatusBadRequest)
		return
	}

	j, err := h.queue.Enqueue(job.JobGenerate, "", job.GenerateParams{
		TranscriptID: transcript.ID,
		Style:        req.Style,
		Angle:        req.Angle,
		Instructions: req.Instructions,
		CorrectFirst: req.CorrectFirst,
	})
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

type translateRequest struct {
	TargetLang  string   `json:"target_lang"`
	SEOKeywords []string `json:"seo_keywords"`
}

// Translate enqueues translation of an article into another language.
func (h *ArticlesHandler) Translate(w http.ResponseWriter, r *http.Request) {
	article, err := h.db.GetArticle(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "article not found", http.StatusNotFound)
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if _, ok := content.Languages[req.TargetLang]; !ok {
		jsonError(w, "unsupported target language: "+req.TargetLang, http.StatusBadRequest)
		return
	}

	j, err := h.queue.Enqueue(job.JobTranslate, "", job.TranslateParams{
		ArticleID:   article.ID,
		TargetLang:  req.TargetLang,
		SEOKeywords: req.SEOKeywords,
	})
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

func (h *ArticlesHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.db.ListArticles(r.URL.Query().Get("transcript_id"))
	if err != nil {
		jsonError(w, "failed to list articles", http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}
	jsonResponse(w, articles, http.StatusOK)
}

func (h *ArticlesHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.db.GetArticle(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "article not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, article, http.StatusOK)
}

func (h *ArticlesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteArticle(chi.URLParam(r, "id")); err != nil {
		jsonError(w, "failed to delete article", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export serves an article as markdown or a standalone HTML page.
func (h *ArticlesHandler) Export(w http.ResponseWriter, r *http.Request) {
	article, err := h.db.GetArticle(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "article not found", http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "md"
	}

	switch format {
	case "md":
		serveDownload(w, article.ID+".md", "text/markdown; charset=utf-8", []byte(export.ArticleMarkdown(article)))
	case "html":
		serveDownload(w, article.ID+".html", "text/html; charset=utf-8", []byte(export.ArticleHTML(article)))
	default:
		jsonError(w, "unsupported format: "+format, http.StatusBadRequest)
	}
}
