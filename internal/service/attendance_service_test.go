package service

import (
	"context"
	"errors"
	"testing"

	"pptq-absensi/internal/attendance"
	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
)

// ── helpers ──

func setupTestAttendanceService() (AttendanceService, *mocks) {
	repo, m := newMocks()
	m.activities.put(
		model.Activity{ID: 1, Nama: "Subuh", JamMulai: "04:30", JamSelesai: "05:30", Status: model.ActivityActive,
			HariAktif: model.StringArray{"senin", "selasa", "rabu", "kamis", "jumat", "sabtu", "minggu"}},
		model.Activity{ID: 2, Nama: "Tahfidz Pagi", JamMulai: "07:00", JamSelesai: "09:00", Status: model.ActivityActive,
			HariAktif: model.StringArray{"senin"}},
		model.Activity{ID: 3, Nama: "Libur", JamMulai: "03:00", JamSelesai: "04:00", Status: model.ActivityInactive,
			HariAktif: model.StringArray{"senin"}},
	)
	m.students.put(
		model.Student{ID: 10, NomorInduk: "S010", Nama: "Ahmad", Kelas: "1A"},
		model.Student{ID: 11, NomorInduk: "S011", Nama: "Budi", Kelas: "1B"},
	)
	svc := NewAttendanceService(repo, attendance.NewMemoryStore(), nil, clock(fixedNow()), nopLogger())
	return svc, m
}

// ── Current ──

func TestAttendanceService_Current_ListsTodayActivities(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	resp, err := svc.Current(context.Background(), "op")
	if err != nil {
		t.Fatalf("Current should succeed: %v", err)
	}
	if resp.Date != "2024-01-01" {
		t.Errorf("date = %s", resp.Date)
	}
	if resp.ActivityID != 0 || resp.Locked {
		t.Errorf("fresh session should be empty: %+v", resp)
	}
	if len(resp.Activities) != 2 {
		t.Fatalf("want 2 activities on Monday, got %d", len(resp.Activities))
	}
	if resp.Activities[0].Nama != "Subuh" || resp.Activities[1].Nama != "Tahfidz Pagi" {
		t.Errorf("activities should be sorted by start time: %v, %v", resp.Activities[0].Nama, resp.Activities[1].Nama)
	}
}

// ── SelectActivity ──

func TestAttendanceService_SelectActivity_NotFound(t *testing.T) {
	svc, _ := setupTestAttendanceService()

	_, err := svc.SelectActivity(context.Background(), "op", 99)
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("want ErrActivityNotFound, got %v", err)
	}
}

func TestAttendanceService_SwitchActivityResetsRoster(t *testing.T) {
	svc, m := setupTestAttendanceService()
	ctx := context.Background()

	if _, err := svc.SelectActivity(ctx, "op", 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 10, Status: model.StatusHadir}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	resp, err := svc.SelectActivity(ctx, "op", 2)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if !resp.ResetApplied {
		t.Error("switching activity should report a reset")
	}
	st, _ := m.students.GetByID(ctx, 10)
	if st.Status != nil || st.Waktu != nil {
		t.Errorf("roster entry should be cleared, got status=%v waktu=%v", st.Status, st.Waktu)
	}
	if m.attendance.size() != 1 {
		t.Errorf("history must survive the reset, got %d rows", m.attendance.size())
	}
}

func TestAttendanceService_ReselectSameActivityKeepsLock(t *testing.T) {
	svc, _ := setupTestAttendanceService()
	ctx := context.Background()

	_, _ = svc.SelectActivity(ctx, "op", 1)
	if _, err := svc.Lock(ctx, "op"); err != nil {
		t.Fatalf("lock: %v", err)
	}
	resp, err := svc.SelectActivity(ctx, "op", 1)
	if err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if !resp.Locked || resp.ResetApplied {
		t.Errorf("reselecting the same activity should be a no-op: %+v", resp)
	}
}

// ── Mark ──

func TestAttendanceService_Mark_WithoutActivity(t *testing.T) {
	svc, m := setupTestAttendanceService()

	_, err := svc.Mark(context.Background(), "op", &dto.MarkRequest{SantriID: 10, Status: model.StatusHadir})
	if !errors.Is(err, attendance.ErrNoActivity) {
		t.Errorf("want ErrNoActivity, got %v", err)
	}
	if m.attendance.size() != 0 {
		t.Error("no history row should be written")
	}
}

func TestAttendanceService_Mark_UnknownStudent(t *testing.T) {
	svc, _ := setupTestAttendanceService()
	ctx := context.Background()
	_, _ = svc.SelectActivity(ctx, "op", 1)

	_, err := svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 404, Status: model.StatusHadir})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("want ErrStudentNotFound, got %v", err)
	}
}

func TestAttendanceService_Mark_HistoryFailureKeepsRosterUpdate(t *testing.T) {
	svc, m := setupTestAttendanceService()
	ctx := context.Background()
	_, _ = svc.SelectActivity(ctx, "op", 1)
	m.attendance.failing = errStorage

	_, err := svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 10, Status: model.StatusIzin})
	if !errors.Is(err, errStorage) {
		t.Fatalf("want storage error, got %v", err)
	}
	st, _ := m.students.GetByID(ctx, 10)
	if st.Status == nil || *st.Status != model.StatusIzin {
		t.Error("roster update is not rolled back when the history append fails")
	}
}

func TestAttendanceService_SubuhScenario(t *testing.T) {
	svc, m := setupTestAttendanceService()
	ctx := context.Background()

	if _, err := svc.SelectActivity(ctx, "op", 1); err != nil {
		t.Fatalf("select Subuh: %v", err)
	}

	resp, err := svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 10, Status: model.StatusHadir})
	if err != nil {
		t.Fatalf("mark hadir: %v", err)
	}
	if *resp.Student.Status != model.StatusHadir || *resp.Student.Waktu != "08:00" {
		t.Errorf("roster entry = %v %v", *resp.Student.Status, *resp.Student.Waktu)
	}
	rec := resp.Record
	if rec.Tanggal != "2024-01-01" || rec.Kegiatan != "Subuh" || rec.Kelas != "1A" || rec.SantriNama != "Ahmad" {
		t.Errorf("unexpected history row: %+v", rec)
	}

	if _, err := svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 11, Status: model.StatusTidak, Keterangan: "  "}); err != nil {
		t.Fatalf("mark tidak: %v", err)
	}
	if _, err := svc.Lock(ctx, "op"); err != nil {
		t.Fatalf("lock: %v", err)
	}

	_, err = svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 10, Status: model.StatusIzin})
	if !errors.Is(err, attendance.ErrSessionLocked) {
		t.Errorf("marking after lock: want ErrSessionLocked, got %v", err)
	}

	history, _ := m.attendance.ListByDate(ctx, "2024-01-01")
	if len(history) != 2 {
		t.Fatalf("want 2 history rows, got %d", len(history))
	}
	if history[1].Keterangan != nil {
		t.Error("blank note should be stored as null")
	}
	st, _ := m.students.GetByID(ctx, 10)
	if *st.Status != model.StatusHadir {
		t.Error("locked session must not change the roster")
	}
}

func TestAttendanceService_SessionIsSharedByOperators(t *testing.T) {
	svc, m := setupTestAttendanceService()
	ctx := context.Background()

	if _, err := svc.SelectActivity(ctx, "pembina:P001", 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := svc.Mark(ctx, "pembina:P001", &dto.MarkRequest{SantriID: 10, Status: model.StatusHadir}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// another operator switches away and back
	if _, err := svc.SelectActivity(ctx, "admin:7", 2); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if _, err := svc.SelectActivity(ctx, "admin:7", 1); err != nil {
		t.Fatalf("switch back: %v", err)
	}

	resp, err := svc.Current(ctx, "pembina:P001")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if resp.ActivityID != 1 || resp.SelectedBy != "admin:7" {
		t.Errorf("every operator should see the latest selection, got %+v", resp)
	}
	st, _ := m.students.GetByID(ctx, 10)
	if st.Status != nil {
		t.Error("roster should only hold marks of the current selection")
	}

	if _, err := svc.Lock(ctx, "admin:7"); err != nil {
		t.Fatalf("lock: %v", err)
	}
	_, err = svc.Mark(ctx, "pembina:P001", &dto.MarkRequest{SantriID: 11, Status: model.StatusIzin})
	if !errors.Is(err, attendance.ErrSessionLocked) {
		t.Errorf("a lock by one operator binds all of them, got %v", err)
	}
	resp, _ = svc.Current(ctx, "pembina:P001")
	if resp.LockedBy != "admin:7" {
		t.Errorf("locked_by = %q", resp.LockedBy)
	}
}

// ── ResetDay ──

func TestAttendanceService_ResetDay(t *testing.T) {
	svc, m := setupTestAttendanceService()
	ctx := context.Background()
	_, _ = svc.SelectActivity(ctx, "op", 1)
	_, _ = svc.Mark(ctx, "op", &dto.MarkRequest{SantriID: 10, Status: model.StatusTerlambat})

	if err := svc.ResetDay(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, _ := m.students.GetByID(ctx, 10)
	if st.Status != nil {
		t.Error("roster should be cleared")
	}
	resp, _ := svc.Current(ctx, "op")
	if resp.ActivityID != 0 {
		t.Error("sessions should be cleared")
	}
}
