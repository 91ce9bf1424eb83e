package model

// Incident behavioral violation (pelanggaran), table incidents.
type Incident struct {
	ID         uint   `gorm:"primaryKey"                 json:"id"`
	SantriID   uint   `gorm:"not null;index"             json:"santri_id"   binding:"required"`
	SantriNama string `gorm:"type:varchar(100);not null" json:"santri_nama"`
	Jenis      string `gorm:"type:varchar(50);not null"  json:"jenis"       binding:"required,max=50"`
	Deskripsi  string `gorm:"type:text"                  json:"deskripsi"`
	Tanggal    string `gorm:"type:varchar(10);not null;index" json:"tanggal" binding:"omitempty,isodate"`
	Pembina    string `gorm:"type:varchar(100);not null" json:"pembina"     binding:"required,max=100"`
	// Kelas is resolved from the roster for reporting; not stored.
	Kelas string `gorm:"-" json:"kelas,omitempty"`
	BaseModel
}

// TableName table name.
func (Incident) TableName() string { return "incidents" }

// EntityID primary key accessor.
func (i *Incident) EntityID() uint { return i.ID }

// RecordDate report date.
func (i Incident) RecordDate() string { return i.Tanggal }

// RecordClass class of the referenced student.
func (i Incident) RecordClass() string { return i.Kelas }

// RecordStudent denormalized student name.
func (i Incident) RecordStudent() string { return i.SantriNama }
