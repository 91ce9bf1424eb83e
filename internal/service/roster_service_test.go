package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
)

func setupTestRosterService() (RosterService, *mocks) {
	repo, m := newMocks()
	students := newEntityService[model.Student, *model.Student]("santri", repo.Student, prepareStudent, nopLogger())
	m.students.put(
		model.Student{ID: 1, NomorInduk: "S001", Nama: "Ahmad Fauzi", Kelas: "1A"},
		model.Student{ID: 2, NomorInduk: "S002", Nama: "Budi", Kelas: "1B"},
	)
	return NewRosterService(repo, students, nopLogger()), m
}

func TestRosterService_List(t *testing.T) {
	svc, _ := setupTestRosterService()

	list, err := svc.List(context.Background(), &dto.StudentListQuery{Q: "fauzi"})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(list) != 1 || list[0].ID != 1 {
		t.Errorf("unexpected roster: %+v", list)
	}
}

func TestRosterService_History(t *testing.T) {
	svc, m := setupTestRosterService()
	for i := uint(1); i <= 7; i++ {
		m.incidents.put(model.Incident{ID: i, SantriID: 1, Tanggal: fmt.Sprintf("2024-01-%02d", i)})
	}
	m.incidents.put(model.Incident{ID: 20, SantriID: 2, Tanggal: "2024-01-09"})

	h, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("History should succeed: %v", err)
	}
	if len(h.Incidents) != HistoryLimit {
		t.Fatalf("want %d incidents, got %d", HistoryLimit, len(h.Incidents))
	}
	if h.Incidents[0].Tanggal != "2024-01-07" {
		t.Errorf("newest first, got %s", h.Incidents[0].Tanggal)
	}
	if h.Health == nil || h.Attendance == nil {
		t.Error("empty histories should be empty lists")
	}

	if _, err := svc.History(context.Background(), 99); !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("want ErrEntityNotFound, got %v", err)
	}
}
