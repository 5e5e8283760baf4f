// Package server exposes watchlists, quotes, charts and the live feed over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/agent"
	"github.com/etnz/watchlist/feed"
	"github.com/etnz/watchlist/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Config holds the server settings.
type Config struct {
	Debug           bool          // gin debug mode
	MaxDays         int           // largest series served by /api/synthetic, 5000 by default
	ShutdownTimeout time.Duration // 5s by default

	// Briefer writes /api/ai-briefing, a local-only briefer when nil.
	Briefer *agent.Briefer
}

// Server serves the HTTP API.
type Server struct {
	cfg      Config
	cache    *watchlist.Cache
	feed     *feed.Feed
	router   *gin.Engine
	log      *logger.Entry
	upgrader websocket.Upgrader

	mu   sync.RWMutex // guards book
	book *watchlist.Book
}

// New returns a server over book and cache. f may be nil, live endpoints
// are then unavailable.
func New(cfg Config, book *watchlist.Book, cache *watchlist.Cache, f *feed.Feed) *Server {
	if cfg.MaxDays <= 0 {
		cfg.MaxDays = 5000
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Briefer == nil {
		cfg.Briefer = &agent.Briefer{}
	}
	if book == nil {
		book = &watchlist.Book{Currency: cache.Currency}
	}
	s := &Server{
		cfg:   cfg,
		book:  book,
		cache: cache,
		feed:  f,
		log:   logger.Get().WithComponent("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	if !s.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests)

	api := router.Group("/api")
	{
		api.GET("/watchlists", s.listWatchlists)
		api.GET("/watchlists/:name", s.getWatchlist)
		api.POST("/watchlists/:name/stocks", s.addStock)
		api.DELETE("/watchlists/:name/stocks/:ticker", s.removeStock)
		api.GET("/stocks/:ticker", s.getQuote)
		api.GET("/stocks/:ticker/chart", s.getChart)
		api.GET("/synthetic", s.getSynthetic)
		api.GET("/alerts", s.listAlerts)
		api.POST("/alerts", s.createAlert)
		api.GET("/ai-briefing", s.getBriefing)
	}
	router.GET("/ws/stocks/:ticker", s.streamTicks)
	return router
}

// logRequests logs every request at debug level, failures at warn level.
func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	entry := s.log.WithFields(logger.Fields{
		"method":      c.Request.Method,
		"path":        c.Request.URL.Path,
		"status":      c.Writer.Status(),
		"duration_ms": float64(time.Since(start).Nanoseconds()) / 1e6,
	})
	if c.Writer.Status() >= http.StatusBadRequest {
		entry.Warn("request failed")
		return
	}
	entry.Debug("request")
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errLog := s.log.WithFields(logger.Fields{"addr": addr}).Writer()
	defer errLog.Close()
	srv := &http.Server{Addr: addr, Handler: s.router, ErrorLog: log.New(errLog, "", 0)}
	errc := make(chan error, 1)
	go func() {
		s.log.WithFields(logger.Fields{"addr": addr}).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
