package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pptq-absensi/internal/model"
	"pptq-absensi/internal/repository"
)

// ── generic in-memory CrudRepository ──

type mockCrud[T any, P entity[T]] struct {
	mu      sync.Mutex
	items   map[uint]T
	nextID  uint
	setID   func(*T, uint)
	unique  func(*T) string // optional unique key
	failing error           // returned by every write when set
	creates int
}

func newMockCrud[T any, P entity[T]](setID func(*T, uint), unique func(*T) string) *mockCrud[T, P] {
	return &mockCrud[T, P]{items: map[uint]T{}, nextID: 1, setID: setID, unique: unique}
}

func (m *mockCrud[T, P]) sorted() []T {
	ids := make([]uint, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.items[id])
	}
	return out
}

func (m *mockCrud[T, P]) List(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *mockCrud[T, P]) GetByID(_ context.Context, id uint) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (m *mockCrud[T, P]) conflicts(item *T) bool {
	if m.unique == nil {
		return false
	}
	key := m.unique(item)
	for id, other := range m.items {
		other := other
		if id != P(item).EntityID() && m.unique(&other) == key {
			return true
		}
	}
	return false
}

func (m *mockCrud[T, P]) Create(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return m.failing
	}
	if m.conflicts(item) {
		return gorm.ErrDuplicatedKey
	}
	if P(item).EntityID() == 0 {
		m.setID(item, m.nextID)
	}
	if id := P(item).EntityID(); id >= m.nextID {
		m.nextID = id + 1
	}
	m.items[P(item).EntityID()] = *item
	m.creates++
	return nil
}

func (m *mockCrud[T, P]) Update(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return m.failing
	}
	if m.conflicts(item) {
		return gorm.ErrDuplicatedKey
	}
	m.items[P(item).EntityID()] = *item
	return nil
}

func (m *mockCrud[T, P]) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockCrud[T, P]) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *mockCrud[T, P]) Upsert(_ context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range items {
		id := P(&items[i]).EntityID()
		m.items[id] = items[i]
		if id >= m.nextID {
			m.nextID = id + 1
		}
	}
	return nil
}

func (m *mockCrud[T, P]) put(items ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range items {
		id := P(&items[i]).EntityID()
		m.items[id] = items[i]
		if id >= m.nextID {
			m.nextID = id + 1
		}
	}
}

func (m *mockCrud[T, P]) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// latestFor newest-first records of one student.
func latestFor[T any](items []T, match func(*T) bool, date func(*T) string, limit int) []T {
	var out []T
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return date(&out[i]) > date(&out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	*mockCrud[model.Student, *model.Student]
	updateErr error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{mockCrud: newMockCrud[model.Student, *model.Student](
		func(s *model.Student, id uint) { s.ID = id },
		func(s *model.Student) string { return s.NomorInduk },
	)}
}

func (m *mockStudentRepo) GetByNomorInduk(_ context.Context, nomorInduk string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.NomorInduk == nomorInduk {
			s := s
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) UpdateAttendance(_ context.Context, id uint, status, waktu, keterangan *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	s, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status, s.Waktu, s.Keterangan = status, waktu, keterangan
	m.items[id] = s
	return nil
}

func (m *mockStudentRepo) ResetAttendance(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.items {
		s.ClearAttendance()
		m.items[id] = s
		n++
	}
	return n, nil
}

// ── Mock SupervisorRepository ──

type mockSupervisorRepo struct {
	*mockCrud[model.Supervisor, *model.Supervisor]
}

func newMockSupervisorRepo() *mockSupervisorRepo {
	return &mockSupervisorRepo{mockCrud: newMockCrud[model.Supervisor, *model.Supervisor](
		func(s *model.Supervisor, id uint) { s.ID = id },
		func(s *model.Supervisor) string { return s.IDPembina },
	)}
}

func (m *mockSupervisorRepo) GetByIDPembina(_ context.Context, idPembina string) (*model.Supervisor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.IDPembina == idPembina {
			s := s
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	*mockCrud[model.Admin, *model.Admin]
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{mockCrud: newMockCrud[model.Admin, *model.Admin](
		func(a *model.Admin, id uint) { a.ID = id },
		func(a *model.Admin) string { return a.Username },
	)}
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	*mockCrud[model.Activity, *model.Activity]
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{mockCrud: newMockCrud[model.Activity, *model.Activity](
		func(a *model.Activity, id uint) { a.ID = id }, nil,
	)}
}

func (m *mockActivityRepo) ListActive(ctx context.Context) ([]model.Activity, error) {
	all, _ := m.List(ctx)
	var out []model.Activity
	for _, a := range all {
		if a.Status == model.ActivityActive {
			out = append(out, a)
		}
	}
	return out, nil
}

// ── Mock record repositories ──

type mockIncidentRepo struct {
	*mockCrud[model.Incident, *model.Incident]
}

func newMockIncidentRepo() *mockIncidentRepo {
	return &mockIncidentRepo{mockCrud: newMockCrud[model.Incident, *model.Incident](
		func(i *model.Incident, id uint) { i.ID = id }, nil,
	)}
}

func (m *mockIncidentRepo) ListByStudent(ctx context.Context, santriID uint, limit int) ([]model.Incident, error) {
	all, _ := m.List(ctx)
	return latestFor(all,
		func(i *model.Incident) bool { return i.SantriID == santriID },
		func(i *model.Incident) string { return i.Tanggal },
		limit), nil
}

type mockHealthRepo struct {
	*mockCrud[model.HealthRecord, *model.HealthRecord]
}

func newMockHealthRepo() *mockHealthRepo {
	return &mockHealthRepo{mockCrud: newMockCrud[model.HealthRecord, *model.HealthRecord](
		func(h *model.HealthRecord, id uint) { h.ID = id }, nil,
	)}
}

func (m *mockHealthRepo) ListByStudent(ctx context.Context, santriID uint, limit int) ([]model.HealthRecord, error) {
	all, _ := m.List(ctx)
	return latestFor(all,
		func(h *model.HealthRecord) bool { return h.SantriID == santriID },
		func(h *model.HealthRecord) string { return h.Tanggal },
		limit), nil
}

type mockAttendanceRepo struct {
	*mockCrud[model.AttendanceRecord, *model.AttendanceRecord]
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{mockCrud: newMockCrud[model.AttendanceRecord, *model.AttendanceRecord](
		func(r *model.AttendanceRecord, id uint) { r.ID = id }, nil,
	)}
}

func (m *mockAttendanceRepo) ListByStudent(ctx context.Context, santriID uint, limit int) ([]model.AttendanceRecord, error) {
	all, _ := m.List(ctx)
	return latestFor(all,
		func(r *model.AttendanceRecord) bool { return r.SantriID == santriID },
		func(r *model.AttendanceRecord) string { return r.Tanggal },
		limit), nil
}

func (m *mockAttendanceRepo) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	all, _ := m.List(ctx)
	var out []model.AttendanceRecord
	for _, r := range all {
		if r.Tanggal == date {
			out = append(out, r)
		}
	}
	return out, nil
}

// ── Mock TokenStore ──

type mockTokenStore struct {
	mu          sync.Mutex
	idle        map[string]time.Duration
	blacklisted map[string]time.Duration
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{idle: map[string]time.Duration{}, blacklisted: map[string]time.Duration{}}
}

func (m *mockTokenStore) TouchIdle(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idle[jti] = ttl
	return nil
}

func (m *mockTokenStore) DropIdle(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.idle, jti)
	return nil
}

func (m *mockTokenStore) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklisted[jti] = ttl
	return nil
}

// ── fixture ──

type mocks struct {
	students    *mockStudentRepo
	supervisors *mockSupervisorRepo
	classes     *mockCrud[model.Class, *model.Class]
	activities  *mockActivityRepo
	incidents   *mockIncidentRepo
	health      *mockHealthRepo
	attendance  *mockAttendanceRepo
	admins      *mockAdminRepo
}

func newMocks() (*repository.Repository, *mocks) {
	m := &mocks{
		students:    newMockStudentRepo(),
		supervisors: newMockSupervisorRepo(),
		classes:     newMockCrud[model.Class, *model.Class](func(c *model.Class, id uint) { c.ID = id }, nil),
		activities:  newMockActivityRepo(),
		incidents:   newMockIncidentRepo(),
		health:      newMockHealthRepo(),
		attendance:  newMockAttendanceRepo(),
		admins:      newMockAdminRepo(),
	}
	repo := &repository.Repository{
		Student:    m.students,
		Supervisor: m.supervisors,
		Class:      m.classes,
		Activity:   m.activities,
		Incident:   m.incidents,
		Health:     m.health,
		Attendance: m.attendance,
		Admin:      m.admins,
	}
	return repo, m
}

// fixedNow Monday 2024-01-01 08:00 in UTC+7.
func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 8, 0, 0, 0, time.FixedZone("WIB", 7*3600))
}

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var errStorage = errors.New("storage unavailable")

func nopLogger() *zap.Logger { return zap.NewNop() }

func strPtr(s string) *string { return &s }

