package model

// Health status values.
const (
	HealthSakit  = "sakit"
	HealthSembuh = "sembuh"
	HealthIzin   = "izin"
)

// HealthRecord health status note (kesehatan), table health_records.
type HealthRecord struct {
	ID         uint   `gorm:"primaryKey"                 json:"id"`
	SantriID   uint   `gorm:"not null;index"             json:"santri_id"   binding:"required"`
	SantriNama string `gorm:"type:varchar(100);not null" json:"santri_nama"`
	Status     string `gorm:"type:varchar(10);not null"  json:"status"      binding:"required,oneof=sakit sembuh izin"`
	Catatan    string `gorm:"type:text;not null"         json:"catatan"     binding:"required"`
	Tanggal    string `gorm:"type:varchar(10);not null;index" json:"tanggal" binding:"omitempty,isodate"`
	Pembina    string `gorm:"type:varchar(100);not null" json:"pembina"     binding:"required,max=100"`
	// Kelas is resolved from the roster for reporting; not stored.
	Kelas string `gorm:"-" json:"kelas,omitempty"`
	BaseModel
}

// TableName table name.
func (HealthRecord) TableName() string { return "health_records" }

// EntityID primary key accessor.
func (h *HealthRecord) EntityID() uint { return h.ID }

// RecordDate report date.
func (h HealthRecord) RecordDate() string { return h.Tanggal }

// RecordClass class of the referenced student.
func (h HealthRecord) RecordClass() string { return h.Kelas }

// RecordStudent denormalized student name.
func (h HealthRecord) RecordStudent() string { return h.SantriNama }
