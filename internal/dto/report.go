package dto

// ── reports ──

// ReportQuery query string of every report endpoint.
type ReportQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=harian mingguan bulanan daily weekly monthly"`
	Date   string `form:"date"   binding:"omitempty,isodate"`
	Month  string `form:"month"  binding:"omitempty,yearmonth"`
	Kelas  string `form:"kelas"  binding:"max=50"`
	Status string `form:"status" binding:"max=20"`
	Q      string `form:"q"      binding:"max=100"`
}

// ExportQuery export format selector.
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=xlsx pdf"`
}

// ReportResponse filtered records of one category.
type ReportResponse struct {
	Category  string      `json:"category"`
	Period    string      `json:"period"`
	Date      string      `json:"date,omitempty"`
	Month     string      `json:"month,omitempty"`
	WeekLabel string      `json:"week_label,omitempty"`
	Total     int         `json:"total"`
	List      interface{} `json:"list"`
}

// ReportSummaryResponse AI summary of a filtered report.
type ReportSummaryResponse struct {
	Category string `json:"category"`
	Records  int    `json:"records"`
	Summary  string `json:"summary"`
}
