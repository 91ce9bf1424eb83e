package handler

import (
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/service"
)

// Handler aggregates every handler.
type Handler struct {
	Auth       *AuthHandler
	Attendance *AttendanceHandler
	Roster     *RosterHandler
	Report     *ReportHandler
	Summary    *SummaryHandler
	Import     *ImportHandler
	Store      *StoreHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler

	Students    *EntityHandler[model.Student]
	Supervisors *EntityHandler[model.Supervisor]
	Classes     *EntityHandler[model.Class]
	Activities  *EntityHandler[model.Activity]
	Incidents   *EntityHandler[model.Incident]
	HealthNotes *EntityHandler[model.HealthRecord]
	Admins      *EntityHandler[model.Admin]
}

// NewHandler wires the handlers. cache may be nil.
func NewHandler(svc *service.Service, db, cache Pinger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Roster:     NewRosterHandler(svc.Roster),
		Report:     NewReportHandler(svc.Report),
		Summary:    NewSummaryHandler(svc.Summary),
		Import:     NewImportHandler(svc.Import),
		Store:      NewStoreHandler(svc.Store),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Health:     NewHealthHandler(db, cache),

		Students:    NewEntityHandler(svc.Students, "santri"),
		Supervisors: NewEntityHandler(svc.Supervisors, "pembina"),
		Classes:     NewEntityHandler(svc.Classes, "kelas"),
		Activities:  NewEntityHandler(svc.Activities, "kegiatan"),
		Incidents:   NewEntityHandler(svc.Incidents, "pelanggaran"),
		HealthNotes: NewEntityHandler(svc.Health, "kesehatan"),
		Admins:      NewEntityHandler(svc.Admins, "admin"),
	}
}
