// Package web serves the rendered balance chart on a local HTTP page.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/vadiminshakov/fuzzgraph/internal/services/chart"
	"go.uber.org/zap"
)

type chartRenderer interface {
	RenderChart(format chart.Format, w io.Writer) error
}

// Server exposes the chart page and the chart image endpoints.
type Server struct {
	Addr     string
	Title    string
	Format   chart.Format
	Renderer chartRenderer
	logger   *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr, title string, format chart.Format, renderer chartRenderer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Addr: addr, Title: title, Format: format, Renderer: renderer, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/chart.png", s.handleChart(chart.FormatPNG))
	mux.HandleFunc("/chart.svg", s.handleChart(chart.FormatSVG))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
// onReady, if set, receives the page URL once the listener is bound.
func (s *Server) Start(ctx context.Context, onReady func(url string)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	url := "http://" + ln.Addr().String() + "/"
	s.logger.Info("chart page listening", zap.String("url", url))
	if onReady != nil {
		onReady(url)
	}

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := html.EscapeString(s.Title)
	fmt.Fprintf(w, indexHTML, title, title, "/chart."+string(s.Format))
}

func (s *Server) handleChart(format chart.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Renderer == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "chart not available")
			return
		}

		var buf bytes.Buffer
		if err := s.Renderer.RenderChart(format, &buf); err != nil {
			s.logger.Error("render chart", zap.String("format", string(format)), zap.Error(err))
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(buf.Bytes())
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>%s</title>
  <style>
    :root { --bg:#ffffff; --ink:#111111; --panel:#f6f6f6; }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(1400px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
    }
    h1 { font-size:.8rem; text-transform:uppercase; letter-spacing:.2em; margin:0 0 1.5rem; }
    img { width:100%%; border:2px solid var(--ink); background:#fff; }
  </style>
</head>
<body>
  <div id="app">
    <h1>%s</h1>
    <img src="%s" alt="balance chart" />
  </div>
</body>
</html>
`
