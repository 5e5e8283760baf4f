package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/logger"
	"github.com/gin-gonic/gin"
)

const writeWait = 10 * time.Second

// streamTicks upgrades to a websocket and sends every feed tick of the ticker as JSON.
func (s *Server) streamTicks(c *gin.Context) {
	if s.feed == nil {
		fail(c, http.StatusServiceUnavailable, errors.New("live feed is not running"))
		return
	}
	ticker, err := watchlist.NormalizeTicker(c.Param("ticker"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	// the feed only extends cached series.
	if _, err := s.cache.Series(ticker); err != nil {
		fail(c, statusOf(err), err)
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	log := s.log.WithFields(logger.Fields{"ticker": ticker, "remote": c.Request.RemoteAddr})
	log.Info("websocket client connected")

	ticks, unsubscribe := s.feed.Subscribe(ticker, 16)
	defer unsubscribe()

	// the reader only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			log.Info("websocket client disconnected")
			return
		case <-c.Request.Context().Done():
			return
		case tick, ok := <-ticks:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(tick); err != nil {
				log.WithError(err).Warn("websocket write failed")
				return
			}
		}
	}
}
