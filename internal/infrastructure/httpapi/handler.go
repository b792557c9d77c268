// Package httpapi exposes article ingestion over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ports"
)

const maxBodyBytes = 16 << 20

// Handler stores articles posted by the browser plugin or fetched from a page URL.
type Handler struct {
	repo      ports.ArticleRepository
	extractor ports.PageExtractor
	logger    *slog.Logger
	mux       *http.ServeMux
}

// NewHandler wires the routes; extractor may be nil, which disables /pages.
func NewHandler(repo ports.ArticleRepository, extractor ports.PageExtractor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{repo: repo, extractor: extractor, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("/", h.handleArticle)
	h.mux.HandleFunc("/pages", h.handlePage)
	h.mux.HandleFunc("/stats", h.handleStats)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORS(w.Header())
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleArticle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}

	article, err := decodeArticle(body)
	if err != nil {
		var missing *domain.MissingFieldError
		if errors.As(err, &missing) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Отсутствует поле: %s", missing.Field))
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.store(w, r, article)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.extractor == nil {
		writeError(w, http.StatusNotImplemented, "page extraction is disabled")
		return
	}

	var payload pagePayload
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err))
		return
	}
	if payload.URL == "" {
		writeError(w, http.StatusBadRequest, "Отсутствует поле: url")
		return
	}
	if payload.Flag == nil {
		writeError(w, http.StatusBadRequest, "Отсутствует поле: flag")
		return
	}

	article, err := h.extractor.Extract(r.Context(), payload.URL)
	if err != nil {
		var missing *domain.MissingFieldError
		if errors.As(err, &missing) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Warn("page extraction failed", "url", payload.URL, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	article.Flag = int(*payload.Flag)

	h.store(w, r, article)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	counts, err := h.repo.CategoryCounts(r.Context())
	if err != nil {
		h.logger.Error("category counts failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make(map[string]int, len(counts))
	for category, n := range counts {
		out[fmt.Sprint(category)] = n
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request, article domain.Article) {
	id, err := h.repo.Insert(r.Context(), article)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			writeError(w, http.StatusConflict, "Запись с таким заголовком уже существует")
			return
		}
		h.logger.Error("insert article failed", "title", article.Title, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("article stored", "id", id, "flag", article.Flag, "source_url", article.SourceURL)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Данные успешно сохранены", "id": id})
}

func setCORS(header http.Header) {
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
