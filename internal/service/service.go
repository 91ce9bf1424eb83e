package service

import (
	"time"

	"go.uber.org/zap"

	"pptq-absensi/config"
	"pptq-absensi/internal/attendance"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/repository"
	"pptq-absensi/pkg/ai"
	"pptq-absensi/pkg/jwt"
	"pptq-absensi/pkg/metrics"
	"pptq-absensi/pkg/redis"
)

// Service aggregates every service.
type Service struct {
	Auth       AuthService
	Attendance AttendanceService
	Roster     RosterService
	Report     ReportService
	Summary    SummaryService
	Import     ImportService
	Store      StoreService
	Dashboard  DashboardService

	Students    EntityService[model.Student]
	Supervisors EntityService[model.Supervisor]
	Classes     EntityService[model.Class]
	Activities  EntityService[model.Activity]
	Incidents   EntityService[model.Incident]
	Health      EntityService[model.HealthRecord]
	History     EntityService[model.AttendanceRecord]
	Admins      EntityService[model.Admin]
}

// NewService wires the services. rdb may be nil, in which case sessions live
// in process memory and tokens are not tracked server-side. m may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	gen ai.Generator,
	m *metrics.Metrics,
	now func() time.Time,
	logger *zap.Logger,
) *Service {
	var (
		sessions attendance.Store = attendance.NewMemoryStore()
		tokens   TokenStore
	)
	if rdb != nil {
		sessions = attendance.NewRedisStore(rdb)
		tokens = rdb
	}

	ref := studentRef{
		students: repo.Student,
		today:    func() string { return now().Format("2006-01-02") },
	}

	students := newEntityService[model.Student, *model.Student]("santri", repo.Student, prepareStudent, logger)
	supervisors := newEntityService[model.Supervisor, *model.Supervisor]("pembina", repo.Supervisor, prepareSupervisor, logger)
	classes := newEntityService[model.Class, *model.Class]("kelas", repo.Class, nil, logger)
	activities := newEntityService[model.Activity, *model.Activity]("kegiatan", repo.Activity, prepareActivity, logger)
	incidents := newEntityService[model.Incident, *model.Incident]("pelanggaran", repo.Incident, ref.prepareIncident, logger)
	health := newEntityService[model.HealthRecord, *model.HealthRecord]("kesehatan", repo.Health, ref.prepareHealth, logger)
	history := newEntityService[model.AttendanceRecord, *model.AttendanceRecord]("absensiHistory", repo.Attendance, nil, logger)
	admins := newEntityService[model.Admin, *model.Admin]("admin", repo.Admin, prepareAdmin, logger)

	export := NewExportService(now, logger)
	summary := NewSummaryService(&cfg.AI, gen, m, logger)

	return &Service{
		Auth:       NewAuthService(&cfg.Auth, repo, jwtMgr, tokens, logger),
		Attendance: NewAttendanceService(repo, sessions, m, now, logger),
		Roster:     NewRosterService(repo, students, logger),
		Report:     NewReportService(repo, export, summary, logger),
		Summary:    summary,
		Import:     NewImportService(&cfg.Import, students, supervisors, m, logger),
		Store:      NewStoreService(students, supervisors, classes, activities, incidents, health, history, admins, logger),
		Dashboard:  NewDashboardService(repo, now, logger),

		Students:    students,
		Supervisors: supervisors,
		Classes:     classes,
		Activities:  activities,
		Incidents:   incidents,
		Health:      health,
		History:     history,
		Admins:      admins,
	}
}
