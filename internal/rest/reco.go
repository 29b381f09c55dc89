package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"streamReco/business/reco"
	"streamReco/domain"
	"streamReco/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecoHandler struct {
		validate        *validator.Validate
		recoService     RecoService
		defaultK        int
		historyDefaultK int
		timeout         time.Duration
	}

	RecoService interface {
		Popular(ctx context.Context, k int, contentType, genre string) ([]domain.RecommendationItem, error)
		Recommend(ctx context.Context, userID string, k int, contentType, genre string, threshold float64) (domain.RecommendationResult, error)
		History(ctx context.Context, userID string, k int) ([]domain.HistoryEntry, error)
	}

	PopularQuery struct {
		K           *int   `query:"k"`
		ContentType string `query:"content_type"`
		Genre       string `query:"genre"`
	}

	RecommendationsQuery struct {
		UserID           string   `query:"user_id" validate:"required"`
		K                *int     `query:"k"`
		ContentType      string   `query:"content_type"`
		Genre            string   `query:"genre"`
		ExcludeThreshold *float64 `query:"exclude_threshold" validate:"omitempty,gte=0"`
	}

	HistoryQuery struct {
		UserID string `query:"user_id" validate:"required"`
		K      *int   `query:"k"`
	}
)

func NewRecoHandler(recoService RecoService, defaultK, historyDefaultK int) *RecoHandler {
	if defaultK <= 0 {
		defaultK = 10
	}
	if historyDefaultK <= 0 {
		historyDefaultK = 20
	}
	return &RecoHandler{
		validate:        validator.New(),
		recoService:     recoService,
		defaultK:        defaultK,
		historyDefaultK: historyDefaultK,
		timeout:         10 * time.Second,
	}
}

// GET /api/v1/popular?k=10&content_type=movie&genre=drama
func (h *RecoHandler) Popular(c echo.Context) error {
	var q PopularQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	k := h.defaultK
	if q.K != nil {
		k = *q.K
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.recoService.Popular(ctx, k, q.ContentType, q.Genre)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"k":     k,
		"items": items,
	})
}

// GET /api/v1/recommendations?user_id=u1&k=10&content_type=movie&genre=drama
func (h *RecoHandler) Recommendations(c echo.Context) error {
	var q RecommendationsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	k := h.defaultK
	if q.K != nil {
		k = *q.K
	}

	// negative selects the configured default threshold
	threshold := -1.0
	if q.ExcludeThreshold != nil {
		threshold = *q.ExcludeThreshold
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recoService.Recommend(ctx, q.UserID, k, q.ContentType, q.Genre, threshold)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":       q.UserID,
		"k":             k,
		"fallback_used": result.FallbackUsed,
		"items":         result.Items,
	})
}

// GET /api/v1/history?user_id=u1&k=20
func (h *RecoHandler) History(c echo.Context) error {
	var q HistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	k := h.historyDefaultK
	if q.K != nil {
		k = *q.K
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.recoService.History(ctx, q.UserID, k)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id": q.UserID,
		"k":       k,
		"items":   items,
	})
}

func (h *RecoHandler) serviceError(c echo.Context, err error) error {
	if errors.Is(err, reco.ErrNotReady) {
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	}
	logger.Error("recommendation request failed", "error", err.Error())
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
