package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iankisali/digitwin/internal/cache"
	"github.com/iankisali/digitwin/internal/models"
)

const indexPage = "index"

func (s *Server) renderError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := models.ErrorPageData{
		Title:   models.DefaultContent().Title,
		Status:  status,
		Message: http.StatusText(status),
	}
	if err := s.tmplFunc(w, "error.html", data); err != nil {
		slog.Error("Failed to render error template", "error", err)
	}
}

// indexEntry returns the cached landing page, rendering it on a miss.
func (s *Server) indexEntry(r *http.Request) (cache.Entry, error) {
	ctx := r.Context()
	if e, ok := s.cache.Get(indexPage); ok {
		recordCacheHit(ctx, indexPage)
		return e, nil
	}

	start := time.Now()
	var buf bytes.Buffer
	err := s.page.Render(ctx, &buf)
	measureRender(ctx, indexPage, err == nil, time.Since(start))
	if err != nil {
		return cache.Entry{}, err
	}
	return s.cache.Set(indexPage, buf.Bytes()), nil
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	entry, err := s.indexEntry(r)
	if err != nil {
		slog.Error("Failed to render index page", "error", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Add("Vary", "Accept-Encoding")
	w.Header().Set("ETag", entry.ETag)
	if etagMatches(r.Header.Get("If-None-Match"), entry.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(entry.Body); err != nil {
		slog.Debug("Failed to write index page", "error", err)
	}
}

func (s *Server) HandleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, FormatBuildVersion(s.version))
}

// etagMatches reports whether an If-None-Match header value matches etag
// using weak comparison.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func (s *Server) serveFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := s.assets.Open(path)
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer func() { _ = file.Close() }()
		_, _ = io.Copy(w, file)
	}
}

func (s *Server) cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
