package model

// Supervisor (pembina), table supervisors. Logs in with IDPembina alone.
type Supervisor struct {
	ID          uint        `gorm:"primaryKey"                            json:"id"`
	IDPembina   string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"id_pembina"   binding:"required,max=50"`
	Nama        string      `gorm:"type:varchar(100);not null"            json:"nama"         binding:"required,max=100"`
	Kontak      string      `gorm:"type:varchar(50)"                      json:"kontak"       binding:"max=50"`
	Alamat      string      `gorm:"type:text"                             json:"alamat"`
	Pendidikan  string      `gorm:"type:varchar(100)"                     json:"pendidikan"   binding:"max=100"`
	Status      string      `gorm:"type:varchar(20);not null;default:'Aktif'" json:"status" binding:"omitempty,oneof=Aktif 'Tidak Aktif'"`
	KelasDiampu StringArray `gorm:"type:text[]"                           json:"kelas_diampu"`
	BaseModel
}

// TableName table name.
func (Supervisor) TableName() string { return "supervisors" }

// EntityID primary key accessor.
func (s *Supervisor) EntityID() uint { return s.ID }
