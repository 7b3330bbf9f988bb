package dto

// RangoFaltante is an inclusive run of missing sequence numbers, zero-padded
// to the invoice format ("0000012" - "0000015").
type RangoFaltante struct {
	Desde string `json:"desde"`
	Hasta string `json:"hasta"`
}

// SerieReporte is the correlativity result for one "SSS-PPP" series.
type SerieReporte struct {
	Serie     string          `json:"serie"`
	Desde     string          `json:"desde"`
	Hasta     string          `json:"hasta"`
	Emitidas  int             `json:"emitidas"`
	Faltantes []RangoFaltante `json:"faltantes"`
}

type CorrelatividadResponse struct {
	Desde       string         `json:"desde"`
	Hasta       string         `json:"hasta"`
	Series      []SerieReporte `json:"series"`
	Malformados int            `json:"malformados"`
}

// CorrelatividadFilter is bound from the query string of GET /v1/correlatividad.
type CorrelatividadFilter struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
}
