package models

import (
	"errors"
	"time"
)

// Payment methods
const (
	PaymentTunai  = "Tunai"
	PaymentKredit = "Kredit"
)

var (
	ErrInvalidPaymentMethod = errors.New("metode_pembayaran must be Tunai or Kredit")
	ErrMissingLeasing       = errors.New("nama_leasing is required for Kredit sales")
)

type Sale struct {
	ID               int       `json:"id"`
	VehicleID        int       `json:"vehicle_id"`
	CustomerID       int       `json:"customer_id"`
	SalesID          *int      `json:"sales_id,omitempty"`
	NamaPembeli      string    `json:"nama_pembeli"`
	AlamatPembeli    string    `json:"alamat_pembeli"`
	NomorHPPembeli   string    `json:"nomor_hp_pembeli"`
	MetodePembayaran string    `json:"metode_pembayaran"`
	UangMuka         int64     `json:"uang_muka"`
	NamaLeasing      string    `json:"nama_leasing"`
	HargaKredit      int64     `json:"harga_kredit"`
	DanaDariLeasing  int64     `json:"dana_dari_leasing"`
	HargaJual        int64     `json:"harga_jual"`
	TotalHarga       int64     `json:"total_harga"`
	TanggalJual      time.Time `json:"tanggal_jual"`
	CreatedAt        time.Time `json:"created_at"`
}

// SaleWithVehicle joins a sale with the vehicle it sold, used by the
// analytics and report surfaces.
type SaleWithVehicle struct {
	Sale
	Merk        string     `json:"merk"`
	Series      string     `json:"series"`
	Tahun       int        `json:"tahun"`
	HargaBeli   int64      `json:"harga_beli"`
	TanggalBeli *time.Time `json:"tanggal_beli,omitempty"`
	SalesNama   string     `json:"sales_nama,omitempty"`
}

type RecordSaleRequest struct {
	VehicleID        int        `json:"vehicle_id"`
	NamaPembeli      string     `json:"nama_pembeli"`
	AlamatPembeli    string     `json:"alamat_pembeli"`
	NomorHPPembeli   string     `json:"nomor_hp_pembeli"`
	JenisKelamin     string     `json:"jenis_kelamin"`
	MetodePembayaran string     `json:"metode_pembayaran"`
	UangMuka         int64      `json:"uang_muka"`
	NamaLeasing      string     `json:"nama_leasing"`
	HargaKredit      int64      `json:"harga_kredit"`
	DanaDariLeasing  int64      `json:"dana_dari_leasing"`
	HargaJual        int64      `json:"harga_jual"`
	TanggalJual      *time.Time `json:"tanggal_jual"`
}

// TotalPrice computes the effective sale total. Cash sales settle at the
// agreed sale price; credit sales total the down payment, the financed
// amount and the leasing disbursement.
func (r *RecordSaleRequest) TotalPrice() (int64, error) {
	switch r.MetodePembayaran {
	case PaymentTunai:
		return r.HargaJual, nil
	case PaymentKredit:
		return r.UangMuka + r.HargaKredit + r.DanaDariLeasing, nil
	default:
		return 0, ErrInvalidPaymentMethod
	}
}

// Validate checks the request before it reaches the database.
func (r *RecordSaleRequest) Validate() error {
	if r.VehicleID <= 0 {
		return errors.New("vehicle_id is required")
	}
	if r.NamaPembeli == "" {
		return errors.New("nama_pembeli is required")
	}
	if r.NomorHPPembeli == "" {
		return errors.New("nomor_hp_pembeli is required")
	}
	if r.AlamatPembeli == "" {
		return errors.New("alamat_pembeli is required")
	}
	if r.HargaJual < 0 || r.UangMuka < 0 || r.HargaKredit < 0 || r.DanaDariLeasing < 0 {
		return errors.New("amounts cannot be negative")
	}
	if r.MetodePembayaran != PaymentTunai && r.MetodePembayaran != PaymentKredit {
		return ErrInvalidPaymentMethod
	}
	if r.MetodePembayaran == PaymentKredit && r.NamaLeasing == "" {
		return ErrMissingLeasing
	}
	return nil
}
