package models

import "time"

// Vehicle statuses
const (
	StatusTersedia = "Tersedia"
	StatusTerjual  = "Terjual"
)

type Vehicle struct {
	ID                 int        `json:"id"`
	Merk               string     `json:"merk"`
	Tipe               string     `json:"tipe"`
	Model              string     `json:"model"`
	Series             string     `json:"series"`
	BodyType           string     `json:"body_type"`
	Variation          string     `json:"variation"`
	Tahun              int        `json:"tahun"`
	PlatNomor          string     `json:"plat_nomor"`
	Warna              string     `json:"warna"`
	Transmisi          string     `json:"transmisi"`
	BahanBakar         string     `json:"bahan_bakar"`
	Kondisi            string     `json:"kondisi"`
	Kilometer          int64      `json:"kilometer"`
	HargaBeli          int64      `json:"harga_beli"`
	HargaJual          int64      `json:"harga_jual"`
	TanggalBeli        *time.Time `json:"tanggal_beli,omitempty"`
	Deskripsi          string     `json:"deskripsi"`
	Status             string     `json:"status"`
	ImageURL           string     `json:"image_url"`
	PreviousOwners     int        `json:"previous_owners"`
	RegistrationExpiry *time.Time `json:"registration_expiry,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type CreateVehicleRequest struct {
	Merk               string     `json:"merk"`
	Tipe               string     `json:"tipe"`
	Model              string     `json:"model"`
	Series             string     `json:"series"`
	BodyType           string     `json:"body_type"`
	Variation          string     `json:"variation"`
	Tahun              int        `json:"tahun"`
	PlatNomor          string     `json:"plat_nomor"`
	Warna              string     `json:"warna"`
	Transmisi          string     `json:"transmisi"`
	BahanBakar         string     `json:"bahan_bakar"`
	Kondisi            string     `json:"kondisi"`
	Kilometer          int64      `json:"kilometer"`
	HargaBeli          int64      `json:"harga_beli"`
	HargaJual          int64      `json:"harga_jual"`
	TanggalBeli        *time.Time `json:"tanggal_beli"`
	Deskripsi          string     `json:"deskripsi"`
	PreviousOwners     int        `json:"previous_owners"`
	RegistrationExpiry *time.Time `json:"registration_expiry"`
}

// UpdateVehicleRequest carries a partial update. Nil fields are left
// untouched; status changes go through the sales flow, not here.
type UpdateVehicleRequest struct {
	Merk               *string    `json:"merk"`
	Tipe               *string    `json:"tipe"`
	Model              *string    `json:"model"`
	Series             *string    `json:"series"`
	BodyType           *string    `json:"body_type"`
	Variation          *string    `json:"variation"`
	Tahun              *int       `json:"tahun"`
	PlatNomor          *string    `json:"plat_nomor"`
	Warna              *string    `json:"warna"`
	Transmisi          *string    `json:"transmisi"`
	BahanBakar         *string    `json:"bahan_bakar"`
	Kondisi            *string    `json:"kondisi"`
	Kilometer          *int64     `json:"kilometer"`
	HargaBeli          *int64     `json:"harga_beli"`
	HargaJual          *int64     `json:"harga_jual"`
	TanggalBeli        *time.Time `json:"tanggal_beli"`
	Deskripsi          *string    `json:"deskripsi"`
	PreviousOwners     *int       `json:"previous_owners"`
	RegistrationExpiry *time.Time `json:"registration_expiry"`
}
