package dto

import "pptq-absensi/internal/model"

// StudentListQuery roster filters.
type StudentListQuery struct {
	Kelas string `form:"kelas" binding:"max=50"`
	Q     string `form:"q"     binding:"max=100"`
}

// StudentHistory latest records of one student.
type StudentHistory struct {
	Student    *model.Student           `json:"santri"`
	Incidents  []model.Incident         `json:"pelanggaran"`
	Health     []model.HealthRecord     `json:"kesehatan"`
	Attendance []model.AttendanceRecord `json:"absensi"`
}

// ImportResponse bulk import result.
type ImportResponse struct {
	Kind    string `json:"kind"`
	Total   int    `json:"total"`
	Created int    `json:"created"`
}

// DashboardResponse today's overview.
type DashboardResponse struct {
	Date            string           `json:"date"`
	Weekday         string           `json:"hari"`
	TodayActivities []model.Activity `json:"kegiatan_hari_ini"`
	TotalSantri     int64            `json:"total_santri"`
	Hadir           int              `json:"hadir"`
	Tidak           int              `json:"tidak"`
	Izin            int              `json:"izin"`
}

// CatalogResponse static reference data.
type CatalogResponse struct {
	StatusAbsensi    []model.AttendanceStatusInfo `json:"status_absensi"`
	JenisPelanggaran []model.ViolationType        `json:"jenis_pelanggaran"`
}

// HealthResponse connectivity probe.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// SyncReport rows copied per collection by a legacy pull.
type SyncReport struct {
	Collections map[string]int `json:"collections"`
}
