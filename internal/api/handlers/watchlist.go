package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invest-sim/internal/api/models"
	"invest-sim/internal/data"
)

// WatchlistHandler exposes the session watchlist over the API.
type WatchlistHandler struct {
	Watchlist *data.Watchlist
}

func NewWatchlistHandler(w *data.Watchlist) *WatchlistHandler {
	return &WatchlistHandler{Watchlist: w}
}

// List handles GET /api/v1/watchlist.
func (h *WatchlistHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.WatchlistResponse{Tickers: h.Watchlist.List()})
}

// Add handles POST /api/v1/watchlist.
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req models.WatchlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.Watchlist.Add(req.Ticker); err != nil {
		writeError(c, http.StatusConflict, "DUPLICATE_TICKER", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.WatchlistResponse{Tickers: h.Watchlist.List()})
}

// Remove handles DELETE /api/v1/watchlist/:ticker.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	if err := h.Watchlist.Remove(c.Param("ticker")); err != nil {
		writeError(c, http.StatusNotFound, "TICKER_NOT_LISTED", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.WatchlistResponse{Tickers: h.Watchlist.List()})
}
