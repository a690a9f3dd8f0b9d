package models

// PriceRow is one hourly tariff record in API responses. Null prices mean
// the upstream never supplied a value for that hour.
type PriceRow struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	Hour        string   `json:"hour"` // HH:MM
	ImportPrice *float64 `json:"import_price"`
	ExportPrice *float64 `json:"export_price"`
}

// PricesResponse is the body of GET /api/v1/prices.
type PricesResponse struct {
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Count  int        `json:"count"`
	Prices []PriceRow `json:"prices"`
}

// CoverageResponse is the body of GET /api/v1/coverage.
type CoverageResponse struct {
	MinDate       string           `json:"min_date"`
	MaxDate       string           `json:"max_date"`
	Rows          int              `json:"rows"`
	MissingByYear map[int][]string `json:"missing_by_year,omitempty"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
