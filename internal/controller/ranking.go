package controller

import (
	"errors"
	"net/http"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type rankingRoutesHandler struct {
	rankingService service.Ranking
	validate       *validator.Validate
}

func newRankingRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *rankingRoutesHandler {
	h := &rankingRoutesHandler{rankingService: services.Ranking, validate: v}
	outer.GET("/bids/ranked", h.GetRankedBids)
	outer.POST("/bids/rank", h.RankDocuments)

	return h
}

type getRankedBidsInput struct {
	ProjectId string `query:"projectId" validate:"required,max=100"`
	Limit     int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset    int32  `query:"offset" validate:"gte=0"`
}

func newGetRankedBidsInput() getRankedBidsInput {
	return getRankedBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids/ranked
func (h *rankingRoutesHandler) GetRankedBids(c echo.Context) error {
	var input = newGetRankedBidsInput()
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	ranked, err := h.rankingService.RankProjectBids(c.Request().Context(), input.ProjectId, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, ranked); e != nil {
			return e
		}

		return nil
	}

	switch {
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

type rankDocumentsInput struct {
	Bids []map[string]interface{} `json:"bids" validate:"required"`
}

// /bids/rank
func (h *rankingRoutesHandler) RankDocuments(c echo.Context) error {
	var input rankDocumentsInput
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

	ranked := h.rankingService.RankDocuments(input.Bids)
	if e := c.JSON(http.StatusOK, ranked); e != nil {
		return e
	}

	return nil
}
