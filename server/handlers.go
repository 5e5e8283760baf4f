package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/logger"
	"github.com/etnz/watchlist/synthetic"
	"github.com/gin-gonic/gin"
)

func fail(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) listWatchlists(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lists := s.book.Watchlists
	if lists == nil {
		lists = []*watchlist.Watchlist{}
	}
	c.JSON(http.StatusOK, lists)
}

type watchlistResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Primary     bool              `json:"is_primary"`
	Stocks      []watchlist.Quote `json:"stocks"`
}

func (s *Server) getWatchlist(c *gin.Context) {
	s.mu.RLock()
	w, err := s.book.Get(c.Param("name"))
	var resp watchlistResponse
	var tickers []string
	if err == nil {
		resp = watchlistResponse{Name: w.Name, Description: w.Description, Primary: w.Primary}
		tickers = w.Tickers()
	}
	s.mu.RUnlock()
	if err != nil {
		fail(c, http.StatusNotFound, err)
		return
	}
	resp.Stocks, err = s.cache.Quotes(tickers...)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type stockRequest struct {
	Ticker  string `json:"ticker" binding:"required"`
	Company string `json:"company_name"`
}

func (s *Server) addStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	s.mu.Lock()
	w, err := s.book.Get(c.Param("name"))
	var stock watchlist.Stock
	if err == nil {
		stock, err = w.Add(req.Ticker)
	}
	if err == nil && req.Company != "" {
		stock.Company = req.Company
		w.Stocks[len(w.Stocks)-1].Company = req.Company
	}
	s.mu.Unlock()
	if err != nil {
		fail(c, statusOf(err), err)
		return
	}
	// the feed extends cached series only.
	if _, err := s.cache.Series(stock.Ticker); err != nil {
		fail(c, statusOf(err), err)
		return
	}
	s.log.WithFields(logger.Fields{"watchlist": c.Param("name"), "ticker": stock.Ticker}).Info("stock added")
	c.JSON(http.StatusCreated, stock)
}

func (s *Server) removeStock(c *gin.Context) {
	s.mu.Lock()
	w, err := s.book.Get(c.Param("name"))
	if err == nil {
		err = w.Remove(c.Param("ticker"))
	}
	s.mu.Unlock()
	if err != nil {
		fail(c, statusOf(err), err)
		return
	}
	s.log.WithFields(logger.Fields{"watchlist": c.Param("name"), "ticker": c.Param("ticker")}).Info("stock removed")
	c.JSON(http.StatusOK, gin.H{"message": "stock removed from watchlist"})
}

// getBriefing writes the briefing of the watchlist query parameter, the
// primary watchlist by default.
func (s *Server) getBriefing(c *gin.Context) {
	s.mu.RLock()
	var w *watchlist.Watchlist
	var err error
	if name := c.Query("watchlist"); name != "" {
		w, err = s.book.Get(name)
	} else if w = s.book.Primary(); w == nil {
		err = fmt.Errorf("%w: the book is empty", watchlist.ErrUnknownWatchlist)
	}
	var name string
	var stocks []watchlist.Stock
	if err == nil {
		name, stocks = w.Name, slices.Clone(w.Stocks)
	}
	s.mu.RUnlock()
	if err != nil {
		fail(c, http.StatusNotFound, err)
		return
	}

	analyses, err := s.cache.Analyses(stocks...)
	if err != nil {
		fail(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, s.cfg.Briefer.Brief(c.Request.Context(), name, analyses))
}

func (s *Server) getQuote(c *gin.Context) {
	q, err := s.cache.Quote(c.Param("ticker"))
	if err != nil {
		fail(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, q)
}

type chartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type chartResponse struct {
	Ticker string       `json:"ticker"`
	Period string       `json:"period"`
	Data   []chartPoint `json:"data"`
}

func (s *Server) getChart(c *gin.Context) {
	period, err := watchlist.ParseChartPeriod(c.Query("period"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	ticker, err := watchlist.NormalizeTicker(c.Param("ticker"))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	bars, err := s.cache.Series(ticker)
	if err != nil {
		fail(c, statusOf(err), err)
		return
	}
	bars = watchlist.Window(bars, period)
	data := make([]chartPoint, len(bars))
	for i, b := range bars {
		data[i] = chartPoint{Date: b.Date.String(), Price: b.Close}
	}
	c.JSON(http.StatusOK, chartResponse{Ticker: ticker, Period: string(period), Data: data})
}

func (s *Server) getSynthetic(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(synthetic.DefaultDays)))
	if err != nil || days < 0 || days > s.cfg.MaxDays {
		fail(c, http.StatusBadRequest, errors.New("days must be an integer between 0 and "+strconv.Itoa(s.cfg.MaxDays)))
		return
	}
	price, err := strconv.ParseFloat(c.DefaultQuery("price", strconv.FormatFloat(synthetic.DefaultInitialPrice, 'f', -1, 64)), 64)
	if err != nil || price <= 0 {
		fail(c, http.StatusBadRequest, errors.New("price must be a positive number"))
		return
	}
	c.JSON(http.StatusOK, synthetic.Generate(days, price))
}

func (s *Server) alerts() []watchlist.Alert {
	if s.feed != nil {
		return s.feed.Alerts()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := make([]watchlist.Alert, len(s.book.Alerts))
	for i, a := range s.book.Alerts {
		alerts[i] = *a
	}
	return alerts
}

func (s *Server) listAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, s.alerts())
}

type alertRequest struct {
	Ticker string   `json:"stock_ticker" binding:"required"`
	High   *float64 `json:"high_price"`
	Low    *float64 `json:"low_price"`
	Email  string   `json:"email"`
}

func (s *Server) createAlert(c *gin.Context) {
	if s.feed == nil {
		fail(c, http.StatusServiceUnavailable, errors.New("live feed is not running"))
		return
	}
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	a, err := watchlist.NewAlert(req.Ticker, req.High, req.Low, req.Email)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	// the feed owns a from now on.
	created := *a
	s.feed.AddAlert(a)
	s.log.WithFields(logger.Fields{"alert": created.ID.String()}).Info("alert created: " + created.String())
	c.JSON(http.StatusCreated, &created)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, watchlist.ErrInvalidTicker), errors.Is(err, watchlist.ErrUnknownPeriod),
		errors.Is(err, watchlist.ErrDuplicateTicker):
		return http.StatusBadRequest
	case errors.Is(err, watchlist.ErrUnknownWatchlist), errors.Is(err, watchlist.ErrUnknownTicker):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
