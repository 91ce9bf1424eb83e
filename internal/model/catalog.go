package model

// AttendanceStatusInfo display metadata for a status code.
type AttendanceStatusInfo struct {
	Nama      string `json:"nama"`
	Kode      string `json:"kode"`
	Warna     string `json:"warna"`
	Prioritas int    `json:"prioritas"`
	Aktif     bool   `json:"aktif"`
}

// ViolationType incident catalog entry.
type ViolationType struct {
	Nama      string `json:"nama"`
	Kode      string `json:"kode"`
	Poin      int    `json:"poin"`
	Aktif     bool   `json:"aktif"`
	Deskripsi string `json:"deskripsi"`
}

// AttendanceStatuses static status catalog.
var AttendanceStatuses = []AttendanceStatusInfo{
	{Nama: "Hadir", Kode: StatusHadir, Warna: "green", Prioritas: 1, Aktif: true},
	{Nama: "Tidak Hadir", Kode: StatusTidak, Warna: "red", Prioritas: 2, Aktif: true},
	{Nama: "Izin", Kode: StatusIzin, Warna: "yellow", Prioritas: 3, Aktif: true},
	{Nama: "Sakit", Kode: "sakit", Warna: "orange", Prioritas: 4, Aktif: true},
	{Nama: "Terlambat", Kode: StatusTerlambat, Warna: "purple", Prioritas: 5, Aktif: true},
}

// ViolationTypes static incident catalog.
var ViolationTypes = []ViolationType{
	{Nama: "Terlambat Sholat", Kode: "terlambat", Poin: 5, Aktif: true, Deskripsi: "Terlambat mengikuti sholat berjamaah"},
	{Nama: "Tidak Hadir Tanpa Keterangan", Kode: "tidak-hadir", Poin: 10, Aktif: true, Deskripsi: "Tidak mengikuti kegiatan tanpa izin"},
	{Nama: "Tidak Berpakaian Rapi", Kode: "tidak-rapi", Poin: 3, Aktif: true, Deskripsi: "Tidak memakai seragam atau peci"},
	{Nama: "Membuat Gaduh", Kode: "gaduh", Poin: 7, Aktif: true, Deskripsi: "Mengganggu ketenangan saat kegiatan"},
	{Nama: "Tidak Membawa Al-Quran", Kode: "tidak-alquran", Poin: 2, Aktif: true, Deskripsi: "Lupa membawa Al-Quran saat mengaji"},
	{Nama: "Berbicara Saat Ustadz Mengajar", Kode: "berbicara", Poin: 5, Aktif: true, Deskripsi: "Berbicara atau bercanda saat pembelajaran"},
}
