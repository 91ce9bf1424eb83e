package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	rows := make([][]string, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, []string{"Ahmad Fauzi", "1A", "hadir", "2024-01-01"})
	}

	buf, err := Render(Document{
		Title:       "Laporan Absensi",
		Subtitle:    "Periode: 2024-01-01 s/d 2024-01-07",
		Headers:     []string{"Nama", "Kelas", "Status", "Tanggal"},
		Rows:        rows,
		GeneratedAt: time.Date(2024, 1, 7, 20, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestRender_NoColumns(t *testing.T) {
	if _, err := Render(Document{Title: "x"}); err == nil {
		t.Error("expected error without columns")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := truncate(long)
	if len([]rune(got)) != maxCellLen {
		t.Errorf("expected %d runes, got %d", maxCellLen, len([]rune(got)))
	}
	if truncate("pendek") != "pendek" {
		t.Error("short values must be kept")
	}
}
