package report

import (
	"errors"
	"reflect"
	"testing"

	"pptq-absensi/internal/model"
	pkgerrors "pptq-absensi/pkg/errors"
)

func attendanceFixture() []model.AttendanceRecord {
	return []model.AttendanceRecord{
		{ID: 1, SantriNama: "Ahmad Fauzi", Kelas: "1A", Status: model.StatusHadir, Tanggal: "2024-01-01", Kegiatan: "Subuh"},
		{ID: 2, SantriNama: "Budi Santoso", Kelas: "1B", Status: model.StatusHadir, Tanggal: "2024-01-01", Kegiatan: "Subuh"},
		{ID: 3, SantriNama: "Ahmad Fauzi", Kelas: "1A", Status: model.StatusTidak, Tanggal: "2024-01-03", Kegiatan: "Mengaji"},
		{ID: 4, SantriNama: "Chandra", Kelas: "1A", Status: model.StatusIzin, Tanggal: "2024-01-07", Kegiatan: "Subuh"},
		{ID: 5, SantriNama: "Budi Santoso", Kelas: "1B", Status: model.StatusTerlambat, Tanggal: "2024-01-08", Kegiatan: "Subuh"},
		{ID: 6, SantriNama: "Dewi", Kelas: "2A", Status: model.StatusHadir, Tanggal: "2024-02-01", Kegiatan: "Isya"},
	}
}

func ids(recs []model.AttendanceRecord) []uint {
	out := make([]uint, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestApply_Periods(t *testing.T) {
	recs := attendanceFixture()

	tests := []struct {
		name string
		q    Query
		want []uint
	}{
		{"daily", Query{Period: PeriodDaily, Date: "2024-01-01"}, []uint{1, 2}},
		{"daily without date", Query{Period: PeriodDaily}, []uint{1, 2, 3, 4, 5, 6}},
		{"weekly from sunday", Query{Period: PeriodWeekly, Date: "2024-01-07"}, []uint{1, 2, 3, 4}},
		{"weekly next monday", Query{Period: PeriodWeekly, Date: "2024-01-08"}, []uint{5}},
		{"weekly without date", Query{Period: PeriodWeekly}, []uint{1, 2, 3, 4, 5, 6}},
		{"monthly", Query{Period: PeriodMonthly, Month: "2024-01"}, []uint{1, 2, 3, 4, 5}},
		{"monthly without month", Query{Period: PeriodMonthly}, []uint{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(recs, tt.q))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApply_CombinedPredicates(t *testing.T) {
	recs := attendanceFixture()

	q := Query{Period: PeriodMonthly, Month: "2024-01", Class: "1A", Status: model.StatusHadir}
	got := ids(Apply(recs, q))
	if !reflect.DeepEqual(got, []uint{1}) {
		t.Errorf("expected [1], got %v", got)
	}

	q = Query{Period: PeriodMonthly, Month: "2024-01", Search: "budi"}
	got = ids(Apply(recs, q))
	if !reflect.DeepEqual(got, []uint{2, 5}) {
		t.Errorf("search should be case-insensitive substring, got %v", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	recs := attendanceFixture()
	queries := []Query{
		{Period: PeriodWeekly, Date: "2024-01-03", Class: "1A"},
		{Period: PeriodMonthly, Month: "2024-01", Status: model.StatusHadir},
		{Period: PeriodDaily, Search: "ahmad"},
	}
	for _, q := range queries {
		once := Apply(recs, q)
		twice := Apply(once, q)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("%+v: second pass changed the result: %v vs %v", q, ids(once), ids(twice))
		}
	}
}

func TestMatch_IsConjunction(t *testing.T) {
	recs := attendanceFixture()
	period := Query{Period: PeriodWeekly, Date: "2024-01-02"}
	class := Query{Class: "1A"}
	status := Query{Status: model.StatusHadir}
	search := Query{Search: "fauzi"}
	all := Query{Period: PeriodWeekly, Date: "2024-01-02", Class: "1A", Status: model.StatusHadir, Search: "fauzi"}

	for _, r := range recs {
		want := period.Match(r) && class.Match(r) && status.Match(r) && search.Match(r)
		if got := all.Match(r); got != want {
			t.Errorf("record %d: expected %v, got %v", r.ID, want, got)
		}
	}
	if got := ids(Apply(recs, all)); !reflect.DeepEqual(got, []uint{1}) {
		t.Errorf("expected [1], got %v", got)
	}
}

func TestApply_SubuhScenario(t *testing.T) {
	recs := []model.AttendanceRecord{
		{ID: 1, SantriNama: "A", Kelas: "1A", Status: model.StatusHadir, Tanggal: "2024-01-01", Kegiatan: "Subuh"},
		{ID: 2, SantriNama: "B", Kelas: "1B", Status: model.StatusHadir, Tanggal: "2024-01-01", Kegiatan: "Subuh"},
	}

	got := Apply(recs, Query{Period: PeriodDaily, Date: "2024-01-01", Class: "1A"})
	if len(got) != 1 || got[0].SantriNama != "A" {
		t.Errorf("expected only A, got %+v", got)
	}
	got = Apply(recs, Query{Period: PeriodWeekly, Date: "2024-01-07"})
	if len(got) != 2 {
		t.Errorf("expected both records in the week, got %d", len(got))
	}
}

func TestApply_StatusIgnoredForRecordsWithoutStatus(t *testing.T) {
	incidents := []model.Incident{
		{ID: 1, SantriNama: "Ahmad", Kelas: "1A", Tanggal: "2024-01-01", Jenis: "gaduh"},
	}
	got := Apply(incidents, Query{Status: model.StatusHadir})
	if len(got) != 1 {
		t.Errorf("incident has no status; expected it to pass, got %d", len(got))
	}
}

func TestApply_StatusIgnoredForHealthRecords(t *testing.T) {
	// the status filter shared across report tabs holds attendance values
	health := []model.HealthRecord{
		{ID: 1, SantriNama: "Ahmad", Kelas: "1A", Status: model.HealthSakit, Tanggal: "2024-01-01"},
		{ID: 2, SantriNama: "Budi", Kelas: "1A", Status: model.HealthSembuh, Tanggal: "2024-01-01"},
	}
	for _, status := range []string{model.StatusHadir, model.HealthSakit} {
		if got := Apply(health, Query{Status: status}); len(got) != 2 {
			t.Errorf("status %q: expected both records, got %d", status, len(got))
		}
	}
}

func TestApply_EmptyClassOnDanglingReference(t *testing.T) {
	// Kelas stays empty when the referenced student no longer exists.
	incidents := []model.Incident{{ID: 1, SantriID: 99, SantriNama: "Gone", Tanggal: "2024-01-01"}}
	if got := Apply(incidents, Query{Class: "1A"}); len(got) != 0 {
		t.Errorf("dangling reference should not match a class filter")
	}
	if got := Apply(incidents, Query{}); len(got) != 1 {
		t.Errorf("dangling reference should pass an empty class filter")
	}
}

func TestParsePeriod(t *testing.T) {
	tests := map[string]Period{
		"":         PeriodDaily,
		"harian":   PeriodDaily,
		"weekly":   PeriodWeekly,
		"Mingguan": PeriodWeekly,
		"bulanan":  PeriodMonthly,
	}
	for in, want := range tests {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %q, %v; expected %q", in, got, err, want)
		}
	}
	if _, err := ParsePeriod("yearly"); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestQuery_Validate(t *testing.T) {
	if err := (Query{Period: PeriodDaily, Date: "2024-13-01"}).Validate(); err == nil {
		t.Error("expected invalid date error")
	}
	if err := (Query{Period: PeriodMonthly, Month: "2024-1"}).Validate(); err == nil {
		t.Error("expected invalid month error")
	}
	if err := (Query{Period: PeriodWeekly, Date: "2024-01-07"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestQuery_WeekLabel(t *testing.T) {
	q := Query{Period: PeriodWeekly, Date: "2024-01-07"}
	if got := q.WeekLabel(); got != "2024-01-01 s/d 2024-01-07" {
		t.Errorf("unexpected label %q", got)
	}
	if got := (Query{Period: PeriodDaily, Date: "2024-01-07"}).WeekLabel(); got != "" {
		t.Errorf("daily query should have no label, got %q", got)
	}
}

func TestFilterRoster(t *testing.T) {
	students := []model.Student{
		{ID: 1, NomorInduk: "S101", Nama: "Ahmad", Kelas: "1A"},
		{ID: 2, NomorInduk: "S102", Nama: "Budi", Kelas: "1B"},
		{ID: 3, NomorInduk: "S203", Nama: "Chandra", Kelas: "1A"},
	}

	if got := FilterRoster(students, "1A", ""); len(got) != 2 {
		t.Errorf("expected 2 students in 1A, got %d", len(got))
	}
	if got := FilterRoster(students, "", "s20"); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("search should match nomor_induk, got %+v", got)
	}
	if got := FilterRoster(students, "", "  "); len(got) != 3 {
		t.Errorf("blank search should not constrain, got %d", len(got))
	}
}
