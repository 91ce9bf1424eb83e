package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pptq-absensi/pkg/storeclient"
)

type fakeSource struct {
	snap storeclient.Snapshot
	err  error
}

func (f *fakeSource) FetchAll(context.Context) (storeclient.Snapshot, error) {
	return f.snap, f.err
}

type fakeSequences struct{ calls int }

func (f *fakeSequences) ResetSequences(context.Context) error {
	f.calls++
	return nil
}

func TestSyncService_Pull(t *testing.T) {
	repo, m := newMocks()
	src := &fakeSource{snap: storeclient.Snapshot{
		"santri":  json.RawMessage(`[{"id":5,"nomor_induk":"S005","nama":"Ahmad","kelas":"1A","status":"hadir","waktu":"04:30"}]`),
		"pembina": json.RawMessage(`[{"id":2,"id_pembina":"P002","nama":"Ustadz Yusuf","kelas_diampu":"1A, 1B"}]`),
		"kelas":   json.RawMessage(`[{"id":1,"nama_kelas":"1A"},{"id":2,"nama_kelas":"1B"}]`),
		"admin":   json.RawMessage(`[{"id":3,"name":"Ahmad","username":"ahmad","password":"rahasia"}]`),
	}}
	seq := &fakeSequences{}

	report, err := NewSyncService(src, repo, seq, nopLogger()).Pull(context.Background())
	if err != nil {
		t.Fatalf("Pull should succeed: %v", err)
	}
	if report.Collections["kelas"] != 2 || report.Collections["santri"] != 1 || report.Collections["pelanggaran"] != 0 {
		t.Errorf("unexpected report: %v", report.Collections)
	}
	if seq.calls != 1 {
		t.Error("sequences should be realigned once")
	}

	st, err := m.students.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("legacy id should be kept: %v", err)
	}
	if st.Status != nil {
		t.Error("session fields are not imported")
	}
	sp, _ := m.supervisors.GetByID(context.Background(), 2)
	if sp.Status != "Aktif" || len(sp.KelasDiampu) != 2 {
		t.Errorf("unexpected supervisor: %+v", sp)
	}
	a, _ := m.admins.GetByID(context.Background(), 3)
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("rahasia")) != nil {
		t.Error("admin password should be hashed")
	}
	if a.Password != "" {
		t.Error("plaintext password should not be stored")
	}
}

func TestSyncService_PullErrors(t *testing.T) {
	repo, _ := newMocks()
	seq := &fakeSequences{}

	src := &fakeSource{err: errStorage}
	if _, err := NewSyncService(src, repo, seq, nopLogger()).Pull(context.Background()); !errors.Is(err, errStorage) {
		t.Errorf("fetch failure: want errStorage, got %v", err)
	}

	src = &fakeSource{snap: storeclient.Snapshot{"santri": json.RawMessage(`{"not":"a list"}`)}}
	if _, err := NewSyncService(src, repo, seq, nopLogger()).Pull(context.Background()); err == nil {
		t.Error("malformed collection should fail")
	}
	if seq.calls != 0 {
		t.Error("sequences must not be touched after a failed pull")
	}
}
