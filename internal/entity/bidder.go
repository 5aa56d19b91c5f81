package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model. Qualification attributes are frozen once a bid referencing the
// bidder has been accepted; already-scored bids never see later edits.
type Bidder struct {
	Id                     uuid.UUID              `json:"id" db:"id"`
	Name                   string                 `json:"name" db:"name"`
	Registered             bool                   `json:"registered" db:"registered"`
	Turnover               decimal.Decimal        `json:"turnover" db:"turnover"`
	ExperienceYears        int                    `json:"experienceYears" db:"experience_years"`
	References             []string               `json:"references" db:"references"`
	Certifications         []string               `json:"certifications" db:"certifications"`
	TaxClearance           bool                   `json:"taxClearance" db:"tax_clearance"`
	Location               string                 `json:"location" db:"location"`
	IndustryCertifications map[string]interface{} `json:"industryCertifications" db:"industry_certifications"`
	BidIds                 []uuid.UUID            `json:"bidIds" db:"bid_ids"` // submitted-bid history, owned by the bidder
	CreatedAt              string                 `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidderInput struct {
	Name                   string
	Registered             bool
	Turnover               decimal.Decimal
	ExperienceYears        int
	References             []string
	Certifications         []string
	TaxClearance           bool
	Location               string
	IndustryCertifications map[string]interface{}
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type BidderOutputModel struct {
	Id              string   `json:"id"`
	Name            string   `json:"name"`
	Registered      bool     `json:"registered"`
	Turnover        string   `json:"turnover"`
	ExperienceYears int      `json:"experienceYears"`
	References      []string `json:"references"`
	Certifications  []string `json:"certifications"`
	TaxClearance    bool     `json:"taxClearance"`
	Location        string   `json:"location"`
	BidIds          []string `json:"bidIds"`
	CreatedAt       string   `json:"createdAt"`
}
