package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crestlinelabs/decisiond/internal/attention"
	"github.com/crestlinelabs/decisiond/internal/decision"
	"github.com/crestlinelabs/decisiond/internal/metrics"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// DecisionsResponse is the response body for GET /api/v1/decisions.
type DecisionsResponse struct {
	ActionItems []decision.Item `json:"action_items"`
	IntelItems  []decision.Item `json:"intel_items"`
	Meta        decision.Meta   `json:"meta"`
}

// handleDecisions returns the current engine result, optionally scoped to
// one asset or portfolio and optionally curated for the dashboard.
// Dismissals for the requesting user are applied to both surfaces before
// scoping, so every view agrees.
func (s *Server) handleDecisions(c echo.Context) error {
	result := s.provider.Result()
	userID := c.QueryParam("user")

	hidden := s.hiddenSet(userID)
	action := decision.FilterDismissed(result.ActionItems, hidden)
	intel := decision.FilterDismissed(result.IntelItems, hidden)

	if assetID := c.QueryParam("asset"); assetID != "" {
		action = decision.FilterByAsset(action, assetID)
		intel = decision.FilterByAsset(intel, assetID)
	}
	if portfolioID := c.QueryParam("portfolio"); portfolioID != "" {
		action = decision.FilterByPortfolio(action, portfolioID)
		intel = decision.FilterByPortfolio(intel, portfolioID)
	}
	if c.QueryParam("dashboard") == "true" {
		action = decision.SelectTopForDashboard(action, s.engineCfg.DashboardLimit)
	}

	return c.JSON(http.StatusOK, DecisionsResponse{
		ActionItems: action,
		IntelItems:  intel,
		Meta:        result.Meta,
	})
}

// FeedResponse is the response body for GET /api/v1/feed.
type FeedResponse struct {
	Now         []attention.FeedItem    `json:"now"`
	Soon        []attention.FeedItem    `json:"soon"`
	Aware       []attention.FeedItem    `json:"aware"`
	Summaries   []attention.BandSummary `json:"summaries"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// handleFeed returns the merged, banded attention feed. With urgent=true
// only NOW items and deadline-bearing SOON items are returned.
func (s *Server) handleFeed(c echo.Context) error {
	now := time.Now()
	result := s.provider.Result()
	userID := c.QueryParam("user")

	engineItems := append(
		attention.AdaptDecisionItems(result.ActionItems, now),
		attention.AdaptDecisionItems(result.IntelItems, now)...,
	)
	trackerItems := attention.AdaptSourceItems(s.provider.TrackerItems(), now)

	merged := attention.MergeAndDedup(engineItems, trackerItems)
	merged = s.filterHidden(merged, userID, now)

	bands := attention.SplitBands(merged, now)
	resp := FeedResponse{
		Now:         bands.Now,
		Soon:        bands.Soon,
		Aware:       bands.Aware,
		GeneratedAt: result.Meta.GeneratedAt,
	}
	if c.QueryParam("urgent") == "true" {
		all := append(append(append([]attention.FeedItem(nil), bands.Now...), bands.Soon...), bands.Aware...)
		urgent := attention.FilterUrgentOnly(all)
		resp.Now = nil
		resp.Soon = nil
		resp.Aware = nil
		for _, it := range urgent {
			if it.Band == attention.BandNow {
				resp.Now = append(resp.Now, it)
			} else {
				resp.Soon = append(resp.Soon, it)
			}
		}
	}
	resp.Summaries = []attention.BandSummary{
		attention.ComputeBandSummary(attention.BandNow, resp.Now, now),
		attention.ComputeBandSummary(attention.BandSoon, resp.Soon, now),
		attention.ComputeBandSummary(attention.BandAware, resp.Aware, now),
	}
	return c.JSON(http.StatusOK, resp)
}

// DismissRequest is the request body for POST /api/v1/dismissals.
type DismissRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

func (s *Server) handleDismiss(c echo.Context) error {
	var req DismissRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid dismiss request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" || req.ItemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and item_id are required")
	}
	s.dismissals.Dismiss(req.UserID, req.ItemID)
	metrics.DismissalsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleResetDismissals(c echo.Context) error {
	userID := c.QueryParam("user")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user is required")
	}
	s.dismissals.Reset(userID)
	return c.NoContent(http.StatusNoContent)
}

// SnoozeRequest is the request body for POST /api/v1/snooze.
type SnoozeRequest struct {
	UserID string    `json:"user_id"`
	ItemID string    `json:"item_id"`
	Until  time.Time `json:"until"`
}

func (s *Server) handleSnooze(c echo.Context) error {
	var req SnoozeRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid snooze request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" || req.ItemID == "" || req.Until.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, item_id, and until are required")
	}
	if !req.Until.After(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "until must be in the future")
	}
	s.dismissals.Snooze(req.UserID, req.ItemID, req.Until, time.Now())
	return c.NoContent(http.StatusNoContent)
}

// hiddenSet returns the user's dismissed ids. Dismissals only hide
// dismissible items; FilterDismissed enforces that.
func (s *Server) hiddenSet(userID string) map[string]bool {
	if userID == "" {
		return nil
	}
	return s.dismissals.DismissedSet(userID)
}

// filterHidden applies dismissals (dismissible items only) and snoozes
// (any item, time-bounded) to the merged feed.
func (s *Server) filterHidden(items []attention.FeedItem, userID string, now time.Time) []attention.FeedItem {
	if userID == "" {
		return items
	}
	dismissed := s.dismissals.DismissedSet(userID)
	snoozed := s.dismissals.SnoozedSet(userID, now)
	if len(dismissed) == 0 && len(snoozed) == 0 {
		return items
	}
	out := make([]attention.FeedItem, 0, len(items))
	for _, it := range items {
		if snoozed[it.ID] {
			continue
		}
		if it.Dismissible && dismissed[it.ID] {
			continue
		}
		out = append(out, it)
	}
	return out
}
