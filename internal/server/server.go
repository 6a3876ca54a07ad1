package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tahmidriaz/scrubdash/internal/hub"
	"github.com/tahmidriaz/scrubdash/internal/model"
)

//go:embed all:web
var webFS embed.FS

// Server holds the Gin engine and dependencies for the dashboard.
type Server struct {
	engine *gin.Engine
	hub    *hub.Hub
	source string // source description for health output
	listen string
}

// New creates the dashboard web server.
func New(h *hub.Hub, source, listen string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine: engine,
		hub:    h,
		source: source,
		listen: listen,
	}

	s.setupRoutes()
	return s
}

// serveEmbedded reads a file from the embedded FS and writes it with the given content type.
func serveEmbedded(webContent fs.FS, name string, contentType string) gin.HandlerFunc {
	// Pre-read the file at startup so we don't read on every request.
	data, err := fs.ReadFile(webContent, name)
	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) setupRoutes() {
	webContent, _ := fs.Sub(webFS, "web")

	// Dashboard — serve embedded files directly with correct content types.
	s.engine.GET("/", serveEmbedded(webContent, "index.html", "text/html; charset=utf-8"))
	s.engine.GET("/style.css", serveEmbedded(webContent, "style.css", "text/css; charset=utf-8"))
	s.engine.GET("/app.js", serveEmbedded(webContent, "app.js", "application/javascript; charset=utf-8"))

	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		snap, ok := s.hub.Latest()
		state := model.StateWaiting
		if ok {
			state = snap.State
		}
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"source":          s.source,
			"refresh_state":   state,
			"dropped_updates": s.hub.Dropped(),
		})
	})

	// Latest cycle snapshot.
	s.engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.latest())
	})

	// Today's events, most recent first.
	s.engine.GET("/api/events", func(c *gin.Context) {
		snap := s.latest()
		events := snap.TodayEvents
		if events == nil {
			events = []model.Event{}
		}
		c.JSON(http.StatusOK, gin.H{"today": snap.Today, "events": events})
	})

	// One-shot spreadsheet snapshot of the current table.
	s.engine.GET("/export.csv", s.handleExport)

	// WebSocket stream of cycle snapshots.
	s.engine.GET("/ws", s.handleWebSocket)

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// latest returns the current snapshot, or a waiting placeholder before
// the first cycle completes.
func (s *Server) latest() model.Snapshot {
	snap, ok := s.hub.Latest()
	if !ok {
		return model.Snapshot{
			State: model.StateWaiting,
			Error: "no cycle has completed yet",
			DailyStats: model.DailyStats{
				LastWorker:    model.NoWorker,
				LastTimestamp: model.NoActivity,
			},
			Tier: "low",
		}
	}
	return snap
}

// handleExport writes today's table as a CSV attachment. Values in the
// source are unquoted and delimiter-free, so plain joining is safe.
func (s *Server) handleExport(c *gin.Context) {
	snap := s.latest()

	var b strings.Builder
	b.WriteString("Name,Timestamp\n")
	for _, ev := range snap.TodayEvents {
		fmt.Fprintf(&b, "%s,%s\n", ev.WorkerName, ev.TimestampRaw)
	}

	filename := "attendance-" + snap.Today + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(s.listen)
}
