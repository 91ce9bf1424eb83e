package model

// Attendance status codes. The codes are the wire values stored by the legacy system.
const (
	StatusHadir     = "hadir"     // present
	StatusTidak     = "tidak"     // absent
	StatusIzin      = "izin"      // excused
	StatusTerlambat = "terlambat" // late
)

// IsAttendanceStatus reports whether s is a status a roster entry can be marked with.
func IsAttendanceStatus(s string) bool {
	switch s {
	case StatusHadir, StatusTidak, StatusIzin, StatusTerlambat:
		return true
	}
	return false
}

// Student roster entry (santri), table students.
// Status, Waktu and Keterangan belong to the current attendance session only.
type Student struct {
	ID         uint    `gorm:"primaryKey"                            json:"id"`
	NomorInduk string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"nomor_induk" binding:"required,max=50"`
	Nama       string  `gorm:"type:varchar(100);not null"            json:"nama"        binding:"required,max=100"`
	Kelas      string  `gorm:"type:varchar(50);not null;index"       json:"kelas"       binding:"required,max=50"`
	TTL        string  `gorm:"column:ttl;type:varchar(150)"          json:"ttl"         binding:"max=150"`
	Alamat     string  `gorm:"type:text"                             json:"alamat"`
	Wali       string  `gorm:"type:varchar(100)"                     json:"wali"        binding:"max=100"`
	KontakWali string  `gorm:"type:varchar(50)"                      json:"kontak_wali" binding:"max=50"`
	Status     *string `gorm:"type:varchar(20)"                      json:"status"      binding:"omitempty,oneof=hadir tidak izin terlambat"`
	Waktu      *string `gorm:"type:varchar(5)"                       json:"waktu"`
	Keterangan *string `gorm:"type:text"                             json:"keterangan,omitempty"`
	BaseModel
}

// TableName table name.
func (Student) TableName() string { return "students" }

// EntityID primary key accessor.
func (s *Student) EntityID() uint { return s.ID }

// ClearAttendance resets the transient session fields.
func (s *Student) ClearAttendance() {
	s.Status = nil
	s.Waktu = nil
	s.Keterangan = nil
}
