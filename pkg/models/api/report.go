package api

import (
	"encoding/json"
	"fmt"
)

// PeriodExpression accepts either a plain string ("today", "month to
// date", "2024-06-01") or an explicit {startDate, endDate} object, the two
// shapes the period resolver understands.
type PeriodExpression struct {
	Text      string
	StartDate string
	EndDate   string
	IsRange   bool
}

func (p *PeriodExpression) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		p.Text = text
		return nil
	}

	var rng struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.Unmarshal(data, &rng); err != nil {
		return fmt.Errorf("period must be a string or a {startDate, endDate} object")
	}
	p.StartDate = rng.StartDate
	p.EndDate = rng.EndDate
	p.IsRange = true
	return nil
}

// ReportRequest is the report API payload.
type ReportRequest struct {
	Metrics     []string           `json:"metrics" validate:"required,min=1,dive,required"`
	Periods     []PeriodExpression `json:"periods"`
	ServiceName string             `json:"serviceName"`
}

// ReportLine is one rendered report line.
type ReportLine struct {
	Line    string `json:"line"`
	IsError bool   `json:"isError"`
}

// ReportResponse is the report API answer.
type ReportResponse struct {
	Lines []ReportLine `json:"lines"`
}

// WebhookRequest is an inbound chat message from the messaging channel.
type WebhookRequest struct {
	Message    string `json:"message" validate:"required"`
	ReplyToken string `json:"replyToken"`
}

// BackendsResponse lists the registered backend names.
type BackendsResponse struct {
	Backends []string `json:"backends"`
}

// ErrorResponse is the single fatal failure shape.
type ErrorResponse struct {
	Error string `json:"error"`
}
