package model

// AttendanceRecord one marking event per (student, activity, date), table attendance_records.
// Rows are inserted once and never updated.
type AttendanceRecord struct {
	ID         uint    `gorm:"primaryKey"                      json:"id"`
	SantriID   uint    `gorm:"not null;index"                  json:"santri_id"`
	SantriNama string  `gorm:"type:varchar(100);not null"      json:"santri_nama"`
	Kelas      string  `gorm:"type:varchar(50);not null;index" json:"kelas"`
	Status     string  `gorm:"type:varchar(20);not null"       json:"status"`
	Waktu      string  `gorm:"type:varchar(5);not null"        json:"waktu"`
	Tanggal    string  `gorm:"type:varchar(10);not null;index" json:"tanggal"`
	Kegiatan   string  `gorm:"type:varchar(100);not null"      json:"kegiatan"`
	Keterangan *string `gorm:"type:text"                       json:"keterangan,omitempty"`
	BaseModel
}

// TableName table name.
func (AttendanceRecord) TableName() string { return "attendance_records" }

// EntityID primary key accessor.
func (r *AttendanceRecord) EntityID() uint { return r.ID }

// RecordDate report date.
func (r AttendanceRecord) RecordDate() string { return r.Tanggal }

// RecordClass class snapshot taken at marking time.
func (r AttendanceRecord) RecordClass() string { return r.Kelas }

// RecordStatus attendance status.
func (r AttendanceRecord) RecordStatus() string { return r.Status }

// RecordStudent denormalized student name.
func (r AttendanceRecord) RecordStudent() string { return r.SantriNama }
