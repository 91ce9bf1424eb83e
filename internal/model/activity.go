package model

import "time"

// Activity status values.
const (
	ActivityActive   = "aktif"
	ActivityInactive = "nonaktif"
)

// weekdayNames indexed by time.Weekday (Sunday = 0).
var weekdayNames = [...]string{"minggu", "senin", "selasa", "rabu", "kamis", "jumat", "sabtu"}

// WeekdayName returns the Indonesian day name stored in Activity.HariAktif.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// Activity scheduled recurring event (kegiatan), table activities.
type Activity struct {
	ID         uint        `gorm:"primaryKey"                json:"id"`
	Nama       string      `gorm:"type:varchar(100);not null" json:"nama"        binding:"required,max=100"`
	JamMulai   string      `gorm:"type:varchar(5);not null"  json:"jam_mulai"   binding:"required,clock"`
	JamSelesai string      `gorm:"type:varchar(5);not null"  json:"jam_selesai" binding:"required,clock"`
	HariAktif  StringArray `gorm:"type:text[]"               json:"hari_aktif"`
	Status     string      `gorm:"type:varchar(10);not null;default:'aktif'" json:"status" binding:"omitempty,oneof=aktif nonaktif"`
	Deskripsi  string      `gorm:"type:text"                 json:"deskripsi"`
	BaseModel
}

// TableName table name.
func (Activity) TableName() string { return "activities" }

// EntityID primary key accessor.
func (a *Activity) EntityID() uint { return a.ID }

// ScheduledOn reports whether the activity is active and runs on the given weekday.
func (a *Activity) ScheduledOn(d time.Weekday) bool {
	return a.Status == ActivityActive && a.HariAktif.Contains(WeekdayName(d))
}
