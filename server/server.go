package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/iankisali/digitwin/internal/cache"
	"github.com/iankisali/digitwin/internal/shell"
)

const shutdownTimeout = 10 * time.Second

type ExecuteTemplateFunc = shell.ExecuteTemplateFunc

// Renderer writes a complete page.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

type Server struct {
	version   string
	port      string
	rateLimit int
	server    *http.Server
	assets    http.FileSystem
	tmplFunc  ExecuteTemplateFunc
	page      Renderer
	cache     *cache.Cache
}

func NewServer(version string, port string, rateLimit int, assets http.FileSystem, tmplFunc ExecuteTemplateFunc, page Renderer, c *cache.Cache) *Server {

	s := &Server{
		version:   version,
		port:      port,
		rateLimit: rateLimit,
		assets:    assets,
		tmplFunc:  tmplFunc,
		page:      page,
		cache:     c,
	}

	s.server = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

// Close drains in-flight requests, then closes whatever is left once the
// shutdown timeout passes.
func (s *Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		if err := s.server.Close(); err != nil {
			panic(err)
		}
	}
}

func FormatBuildVersion(version string) string {
	return fmt.Sprintf("Go Version: %s\nVersion: %s\nOS/Arch: %s/%s", runtime.Version(), version, runtime.GOOS, runtime.GOARCH)
}
