package models

import "time"

type Customer struct {
	ID           int       `json:"id"`
	Nama         string    `json:"nama"`
	NoHP         string    `json:"no_hp"`
	Alamat       string    `json:"alamat"`
	JenisKelamin string    `json:"jenis_kelamin"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateCustomerRequest struct {
	Nama         string `json:"nama"`
	NoHP         string `json:"no_hp"`
	Alamat       string `json:"alamat"`
	JenisKelamin string `json:"jenis_kelamin"`
}

// CustomerWithPurchases joins a customer with the vehicles they bought.
type CustomerWithPurchases struct {
	Customer
	Purchases []CustomerPurchase `json:"purchases"`
}

type CustomerPurchase struct {
	SaleID      int       `json:"sale_id"`
	VehicleID   int       `json:"vehicle_id"`
	Merk        string    `json:"merk"`
	Series      string    `json:"series"`
	Tahun       int       `json:"tahun"`
	TotalHarga  int64     `json:"total_harga"`
	TanggalJual time.Time `json:"tanggal_jual"`
}
