package common

// Bid lifecycle statuses. Transitions move forward only; Accepted and
// Rejected are terminal.
const (
	Draft       = "draft"
	Submitted   = "submitted"
	UnderReview = "under_review"
	Accepted    = "accepted"
	Rejected    = "rejected"
)

// Service levels a bid may request. Anything else is treated as Basic.
const (
	Basic    = "basic"
	Standard = "standard"
	Premium  = "premium"
)
