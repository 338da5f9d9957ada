package models

// HistoryRequest is the query of GET /api/scan/history.
type HistoryRequest struct {
	Limit int `query:"limit" default:"10" validate:"gte=1,lte=500"`
}
