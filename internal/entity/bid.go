package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceRequirements struct {
	MinimumBandwidth float64 `json:"minimumBandwidth"`
	LatencyMs        int     `json:"latencyMs"`
	Reliability      float64 `json:"reliability"`
	ServiceLevel     string  `json:"serviceLevel"`
}

type CostBreakdown struct {
	SetupCost            decimal.Decimal `json:"setupCost"`
	MonthlyRecurringCost decimal.Decimal `json:"monthlyRecurringCost"`
	MaintenanceCost      decimal.Decimal `json:"maintenanceCost"`
	Currency             string          `json:"currency"`
}

type TechnicalSpecification struct {
	Technology              string   `json:"technology"`
	ImplementationTimeframe int      `json:"implementationTimeframe"`
	EquipmentDetails        []string `json:"equipmentDetails"`
}

type ComplianceDetails struct {
	LicensesHeld         []string `json:"licensesHeld"`
	Certifications       []string `json:"certifications"`
	RegulatoryCompliance bool     `json:"regulatoryCompliance"`
}

// db model. BidScore is the deterministic baseline, written by the score
// calculator; AIScore is supplementary and only ever set by the AI path.
// The two are kept apart so neither caller overwrites the other.
type Bid struct {
	Id                     uuid.UUID              `json:"id" db:"id"`
	ProjectId              string                 `json:"projectId" db:"project_id"`
	BidderId               uuid.UUID              `json:"bidderId" db:"bidder_id"`
	BidAmount              decimal.Decimal        `json:"bidAmount" db:"bid_amount"`
	ServiceRequirements    ServiceRequirements    `json:"serviceRequirements" db:"service_requirements"`
	Costs                  CostBreakdown          `json:"costs" db:"costs"`
	TechnicalSpecification TechnicalSpecification `json:"technicalSpecification" db:"technical_specification"`
	ComplianceDetails      ComplianceDetails      `json:"complianceDetails" db:"compliance_details"`
	SubmissionDate         time.Time              `json:"submissionDate" db:"submission_date"`
	ValidUntil             time.Time              `json:"validUntil" db:"valid_until"`
	Status                 string                 `json:"status" db:"status"`
	BidScore               *float64               `json:"bidScore" db:"bid_score"`
	AIScore                *float64               `json:"aiScore" db:"ai_score"`
	Feedback               *string                `json:"feedback" db:"feedback"`
	Insight                json.RawMessage        `json:"insight" db:"insight"`
}

// service + repo input model
type SubmitBidInput struct {
	BidderId               string
	ProjectId              string
	BidAmount              decimal.Decimal
	ServiceRequirements    ServiceRequirements
	Costs                  CostBreakdown
	TechnicalSpecification TechnicalSpecification
	ComplianceDetails      ComplianceDetails
	// Id UUID sets automatically
	// SubmissionDate and ValidUntil set at acceptance time
}

type BidReceipt struct {
	BidId    string `json:"bidId"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Outcome of a submission. An ineligible bidder is a normal negative result,
// not an error: Accepted is false and Reasons lists every deficiency.
type SubmissionOutcome struct {
	Accepted bool
	Receipt  *BidReceipt
	Reasons  []string
}

// controller model
type BidOutputModel struct {
	Id             string   `json:"id"`
	ProjectId      string   `json:"projectId"`
	BidderId       string   `json:"bidderId"`
	BidAmount      string   `json:"bidAmount"`
	ServiceLevel   string   `json:"serviceLevel"`
	SetupCost      string   `json:"setupCost"`
	Compliant      bool     `json:"regulatoryCompliance"`
	Status         string   `json:"status"`
	BidScore       *float64 `json:"bidScore,omitempty"`
	AIScore        *float64 `json:"aiScore,omitempty"`
	Feedback       *string  `json:"feedback,omitempty"`
	SubmissionDate string   `json:"submissionDate"`
	ValidUntil     string   `json:"validUntil"`
}

// controller model, ranking passes only. RankScore is transient and
// recomputed on every pass; it is never persisted.
type RankedBidOutputModel struct {
	BidOutputModel
	RankScore float64 `json:"rankScore"`
}
