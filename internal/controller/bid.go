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

type bidRoutesHandler struct {
	submissionService service.Submission
	validate          *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{submissionService: services.Submission, validate: v}
	outer.POST("/bids/new", h.PostBid)
	outer.GET("/bids", h.GetBids)
	outer.GET("/bids/:bidId", h.GetBid)

	return h
}

type serviceRequirementsInput struct {
	MinimumBandwidth float64 `json:"minimumBandwidth" validate:"gte=0"`
	LatencyMs        int     `json:"latencyMs" validate:"gte=0"`
	Reliability      float64 `json:"reliability" validate:"gte=0,lte=100"`
	ServiceLevel     string  `json:"serviceLevel" validate:"required,oneof=basic standard premium"`
}

type costBreakdownInput struct {
	SetupCost            float64 `json:"setupCost" validate:"gte=0"`
	MonthlyRecurringCost float64 `json:"monthlyRecurringCost" validate:"gte=0"`
	MaintenanceCost      float64 `json:"maintenanceCost" validate:"gte=0"`
	Currency             string  `json:"currency" validate:"max=10"`
}

type technicalSpecificationInput struct {
	Technology              string   `json:"technology" validate:"max=100"`
	ImplementationTimeframe int      `json:"implementationTimeframe" validate:"gte=0"`
	EquipmentDetails        []string `json:"equipmentDetails"`
}

type complianceDetailsInput struct {
	LicensesHeld         []string `json:"licensesHeld"`
	Certifications       []string `json:"certifications"`
	RegulatoryCompliance bool     `json:"regulatoryCompliance"`
}

type postBidInput struct {
	BidderId               string                      `json:"bidderId" validate:"required,max=100"`
	ProjectId              string                      `json:"projectId" validate:"required,max=100"`
	BidAmount              float64                     `json:"bidAmount" validate:"gte=0"`
	ServiceRequirements    serviceRequirementsInput    `json:"serviceRequirements"`
	Costs                  costBreakdownInput          `json:"costs"`
	TechnicalSpecification technicalSpecificationInput `json:"technicalSpecification"`
	ComplianceDetails      complianceDetailsInput      `json:"complianceDetails"`
}

type submissionResponse struct {
	Accepted bool               `json:"accepted"`
	Receipt  *entity.BidReceipt `json:"receipt,omitempty"`
	Reasons  []string           `json:"reasons,omitempty"`
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	model := &entity.SubmitBidInput{
		BidderId:  input.BidderId,
		ProjectId: input.ProjectId,
		BidAmount: decimal.NewFromFloat(input.BidAmount),
		ServiceRequirements: entity.ServiceRequirements{
			MinimumBandwidth: input.ServiceRequirements.MinimumBandwidth,
			LatencyMs:        input.ServiceRequirements.LatencyMs,
			Reliability:      input.ServiceRequirements.Reliability,
			ServiceLevel:     input.ServiceRequirements.ServiceLevel,
		},
		Costs: entity.CostBreakdown{
			SetupCost:            decimal.NewFromFloat(input.Costs.SetupCost),
			MonthlyRecurringCost: decimal.NewFromFloat(input.Costs.MonthlyRecurringCost),
			MaintenanceCost:      decimal.NewFromFloat(input.Costs.MaintenanceCost),
			Currency:             input.Costs.Currency,
		},
		TechnicalSpecification: entity.TechnicalSpecification{
			Technology:              input.TechnicalSpecification.Technology,
			ImplementationTimeframe: input.TechnicalSpecification.ImplementationTimeframe,
			EquipmentDetails:        input.TechnicalSpecification.EquipmentDetails,
		},
		ComplianceDetails: entity.ComplianceDetails{
			LicensesHeld:         input.ComplianceDetails.LicensesHeld,
			Certifications:       input.ComplianceDetails.Certifications,
			RegulatoryCompliance: input.ComplianceDetails.RegulatoryCompliance,
		},
	}

	outcome, err := h.submissionService.Submit(c.Request().Context(), model)
	if err == nil {
		response := submissionResponse{Accepted: outcome.Accepted, Receipt: outcome.Receipt, Reasons: outcome.Reasons}
		status := http.StatusOK
		if !outcome.Accepted {
			status = http.StatusUnprocessableEntity
		}
		if e := c.JSON(status, response); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrBidderNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bidder with given id"}); e != nil {
			return e
		}
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

type getBidsInput struct {
	ProjectId string `query:"projectId" validate:"max=100"`
	Limit     int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset    int32  `query:"offset" validate:"gte=0"`
}

func newGetBidsInput() getBidsInput {
	return getBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids
func (h *bidRoutesHandler) GetBids(c echo.Context) error {
	var input = newGetBidsInput()
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
	bids, err := h.submissionService.GetBids(c.Request().Context(), input.ProjectId, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
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

type getBidInput struct {
	BidId string `param:"bidId" validate:"required,max=100"`
}

// /bids/:bidId
func (h *bidRoutesHandler) GetBid(c echo.Context) error {
	input := getBidInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.submissionService.GetBidById(c.Request().Context(), input.BidId)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
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
