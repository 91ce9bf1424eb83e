package model

// Admin operator account, table admins.
type Admin struct {
	ID           uint   `gorm:"primaryKey"                             json:"id"`
	Name         string `gorm:"type:varchar(100);not null"             json:"name"     binding:"required,max=100"`
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null"  json:"username" binding:"required,min=3,max=50"`
	PasswordHash string `gorm:"type:varchar(255);not null"             json:"-"`
	// Password is accepted on create/update only and replaced by PasswordHash.
	Password string `gorm:"-" json:"password,omitempty" binding:"omitempty,min=6,max=72"`
	BaseModel
}

// TableName table name.
func (Admin) TableName() string { return "admins" }

// EntityID primary key accessor.
func (a *Admin) EntityID() uint { return a.ID }
