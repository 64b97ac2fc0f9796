package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"showroom-backend/internal/models"
)

// ErrAlreadySold is returned when the vehicle targeted by a sale is no
// longer available. The whole transaction rolls back in that case.
var ErrAlreadySold = errors.New("vehicle is not available for sale")

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// RecordSale inserts the buyer as a customer, records the sale and marks
// the vehicle sold, all inside one transaction. The status update only
// matches an available vehicle; zero rows affected means someone sold it
// first and the transaction aborts.
func (r *SaleRepository) RecordSale(ctx context.Context, req *models.RecordSaleRequest, salesID *int, totalHarga int64, tanggalJual time.Time) (*models.Sale, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var customerID int
	err = tx.QueryRow(ctx, `
		INSERT INTO customers (nama, no_hp, alamat, jenis_kelamin)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		req.NamaPembeli, req.NomorHPPembeli, req.AlamatPembeli, req.JenisKelamin,
	).Scan(&customerID)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		VehicleID:        req.VehicleID,
		CustomerID:       customerID,
		SalesID:          salesID,
		NamaPembeli:      req.NamaPembeli,
		AlamatPembeli:    req.AlamatPembeli,
		NomorHPPembeli:   req.NomorHPPembeli,
		MetodePembayaran: req.MetodePembayaran,
		UangMuka:         req.UangMuka,
		NamaLeasing:      req.NamaLeasing,
		HargaKredit:      req.HargaKredit,
		DanaDariLeasing:  req.DanaDariLeasing,
		HargaJual:        req.HargaJual,
		TotalHarga:       totalHarga,
		TanggalJual:      tanggalJual,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO sales (vehicle_id, customer_id, sales_id, nama_pembeli, alamat_pembeli,
			nomor_hp_pembeli, metode_pembayaran, uang_muka, nama_leasing, harga_kredit,
			dana_dari_leasing, harga_jual, total_harga, tanggal_jual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`,
		sale.VehicleID, sale.CustomerID, sale.SalesID, sale.NamaPembeli, sale.AlamatPembeli,
		sale.NomorHPPembeli, sale.MetodePembayaran, sale.UangMuka, sale.NamaLeasing,
		sale.HargaKredit, sale.DanaDariLeasing, sale.HargaJual, sale.TotalHarga, sale.TanggalJual,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		models.StatusTerjual, req.VehicleID, models.StatusTersedia)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAlreadySold
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sale, nil
}

const saleWithVehicleQuery = `
	SELECT s.id, s.vehicle_id, s.customer_id, s.sales_id, s.nama_pembeli, s.alamat_pembeli,
		s.nomor_hp_pembeli, s.metode_pembayaran, s.uang_muka, s.nama_leasing, s.harga_kredit,
		s.dana_dari_leasing, s.harga_jual, s.total_harga, s.tanggal_jual, s.created_at,
		v.merk, v.series, v.tahun, v.harga_beli, v.tanggal_beli, COALESCE(u.nama, '')
	FROM sales s
	JOIN vehicles v ON v.id = s.vehicle_id
	LEFT JOIN users u ON u.id = s.sales_id`

func (r *SaleRepository) scanSales(ctx context.Context, query string, args ...interface{}) ([]models.SaleWithVehicle, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.SaleWithVehicle
	for rows.Next() {
		var s models.SaleWithVehicle
		if err := rows.Scan(
			&s.ID, &s.VehicleID, &s.CustomerID, &s.SalesID, &s.NamaPembeli, &s.AlamatPembeli,
			&s.NomorHPPembeli, &s.MetodePembayaran, &s.UangMuka, &s.NamaLeasing, &s.HargaKredit,
			&s.DanaDariLeasing, &s.HargaJual, &s.TotalHarga, &s.TanggalJual, &s.CreatedAt,
			&s.Merk, &s.Series, &s.Tahun, &s.HargaBeli, &s.TanggalBeli, &s.SalesNama,
		); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) ListAll(ctx context.Context) ([]models.SaleWithVehicle, error) {
	return r.scanSales(ctx, saleWithVehicleQuery+` ORDER BY s.tanggal_jual DESC`)
}

// ListSince returns sales with tanggal_jual at or after the cutoff.
func (r *SaleRepository) ListSince(ctx context.Context, since time.Time) ([]models.SaleWithVehicle, error) {
	return r.scanSales(ctx,
		saleWithVehicleQuery+` WHERE s.tanggal_jual >= $1 ORDER BY s.tanggal_jual DESC`, since)
}

// ListByCustomer returns one customer's transactions, newest first.
func (r *SaleRepository) ListByCustomer(ctx context.Context, customerID int) ([]models.SaleWithVehicle, error) {
	return r.scanSales(ctx,
		saleWithVehicleQuery+` WHERE s.customer_id = $1 ORDER BY s.tanggal_jual DESC`, customerID)
}
