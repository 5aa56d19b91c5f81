package controller

import (
	"errors"
	"net/http"

	"bidwise-api/internal/entity"
	"bidwise-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type bidderRoutesHandler struct {
	submissionService service.Submission
	validate          *validator.Validate
}

func newBidderRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidderRoutesHandler {
	h := &bidderRoutesHandler{submissionService: services.Submission, validate: v}
	outer.POST("/bidders/new", h.PostBidder)
	outer.GET("/bidders/:bidderId", h.GetBidder)

	return h
}

type postBidderInput struct {
	Name                   string                 `json:"name" validate:"required,max=200"`
	Registered             bool                   `json:"registered"`
	Turnover               float64                `json:"turnover" validate:"gte=0"`
	ExperienceYears        int                    `json:"experienceYears" validate:"gte=0"`
	References             []string               `json:"references"`
	Certifications         []string               `json:"certifications"`
	TaxClearance           bool                   `json:"taxClearance"`
	Location               string                 `json:"location" validate:"max=100"`
	IndustryCertifications map[string]interface{} `json:"industryCertifications"`
}

// /bidders/new
func (h *bidderRoutesHandler) PostBidder(c echo.Context) error {
	var input postBidderInput
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

	model := &entity.CreateBidderInput{
		Name:                   input.Name,
		Registered:             input.Registered,
		Turnover:               decimal.NewFromFloat(input.Turnover),
		ExperienceYears:        input.ExperienceYears,
		References:             input.References,
		Certifications:         input.Certifications,
		TaxClearance:           input.TaxClearance,
		Location:               input.Location,
		IndustryCertifications: input.IndustryCertifications,
	}

	bidder, err := h.submissionService.RegisterBidder(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, bidder); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
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

type getBidderInput struct {
	BidderId string `param:"bidderId" validate:"required,max=100"`
}

// /bidders/:bidderId
func (h *bidderRoutesHandler) GetBidder(c echo.Context) error {
	input := getBidderInput{BidderId: c.Param("bidderId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	bidder, err := h.submissionService.GetBidderById(c.Request().Context(), input.BidderId)
	if err == nil {
		if e := c.JSON(http.StatusOK, bidder); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidderNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bidder with given id"}); e != nil {
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
