package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalysisRequest struct {
	Ticker  string `query:"ticker" json:"ticker" validate:"required,alphanum,uppercase,min=1,max=10"`
	Refresh bool   `query:"refresh" json:"refresh" default:"false"`
}

type RegimeHistoryRequest struct {
	Days int `query:"days" json:"days" default:"90" validate:"gte=2,lte=3650"`
}

type PercentilesRequest struct {
	Days int `query:"days" json:"days" default:"365" validate:"gte=30,lte=3650"`
}
