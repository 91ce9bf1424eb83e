package model

// Class (kelas), table classes.
type Class struct {
	ID           uint   `gorm:"primaryKey"                 json:"id"`
	NamaKelas    string `gorm:"type:varchar(50);not null"  json:"nama_kelas"    binding:"required,max=50"`
	Tingkat      string `gorm:"type:varchar(20)"           json:"tingkat"       binding:"omitempty,oneof=Pemula Menengah Lanjutan"`
	Kapasitas    int    `gorm:"not null;default:0"         json:"kapasitas"     binding:"min=0"`
	JumlahSantri int    `gorm:"not null;default:0"         json:"jumlah_santri" binding:"min=0"`
	Pembina      string `gorm:"type:varchar(100)"          json:"pembina"`
	Jadwal       string `gorm:"type:varchar(200)"          json:"jadwal"`
	Ruangan      string `gorm:"type:varchar(100)"          json:"ruangan"`
	Deskripsi    string `gorm:"type:text"                  json:"deskripsi"`
	BaseModel
}

// TableName table name.
func (Class) TableName() string { return "classes" }

// EntityID primary key accessor.
func (c *Class) EntityID() uint { return c.ID }
