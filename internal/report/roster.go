package report

import (
	"strings"

	"pptq-absensi/internal/model"
)

// FilterRoster narrows the roster by class and a case-insensitive match on
// name or enrollment number, keeping order.
func FilterRoster(students []model.Student, class, search string) []model.Student {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Student, 0, len(students))
	for _, s := range students {
		if class != "" && s.Kelas != class {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Nama), search) &&
			!strings.Contains(strings.ToLower(s.NomorInduk), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ClassLookup maps student id to class for records that only hold the id.
func ClassLookup(students []model.Student) map[uint]string {
	m := make(map[uint]string, len(students))
	for _, s := range students {
		m[s.ID] = s.Kelas
	}
	return m
}
