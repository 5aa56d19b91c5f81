package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bidwise-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type insightRoutesHandler struct {
	insightService service.Insight
	validate       *validator.Validate
}

func newInsightRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *insightRoutesHandler {
	h := &insightRoutesHandler{insightService: services.Insight, validate: v}
	outer.POST("/bids/:bidId/ai-score", h.ScoreBid)
	outer.PUT("/bids/:bidId/insight", h.MergeInsight)
	outer.POST("/bids/analyze", h.AnalyzeBids)

	return h
}

type scoreBidInput struct {
	BidId string `param:"bidId" validate:"required,max=100"`
}

// /bids/:bidId/ai-score
func (h *insightRoutesHandler) ScoreBid(c echo.Context) error {
	input := scoreBidInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	result, err := h.insightService.ScoreBid(c.Request().Context(), input.BidId)
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrStorageUnavailable):
		if e := c.JSON(http.StatusServiceUnavailable, errorResponse{"Storage is unavailable"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type mergeInsightInput struct {
	BidId string `param:"bidId" validate:"required,max=100"`
}

// /bids/:bidId/insight
func (h *insightRoutesHandler) MergeInsight(c echo.Context) error {
	input := mergeInsightInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil || len(raw) == 0 {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	err = h.insightService.MergeInsight(c.Request().Context(), input.BidId, json.RawMessage(raw))
	if err == nil {
		if e := c.NoContent(http.StatusNoContent); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrMalformedInsight):
		if e := c.JSON(http.StatusUnprocessableEntity, errorResponse{err.Error()}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrBidNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrStorageUnavailable):
		if e := c.JSON(http.StatusServiceUnavailable, errorResponse{"Storage is unavailable"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type analyzeBidsInput struct {
	Bids []map[string]interface{} `json:"bids" validate:"required"`
}

// /bids/analyze
func (h *insightRoutesHandler) AnalyzeBids(c echo.Context) error {
	var input analyzeBidsInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	insights, err := h.insightService.AnalyzeBids(c.Request().Context(), input.Bids)
	if err == nil {
		if e := c.JSON(http.StatusOK, insights); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrScoringUnavailable):
		if e := c.JSON(http.StatusServiceUnavailable, errorResponse{"AI scoring is not configured"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
