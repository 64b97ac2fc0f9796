package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"showroom-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	query := `
		INSERT INTO customers (nama, no_hp, alamat, jenis_kelamin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nama, no_hp, alamat, jenis_kelamin, created_at`

	c := &models.Customer{}
	err := r.DB.QueryRow(ctx, query, req.Nama, req.NoHP, req.Alamat, req.JenisKelamin).Scan(
		&c.ID, &c.Nama, &c.NoHP, &c.Alamat, &c.JenisKelamin, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	query := `
		SELECT id, nama, no_hp, alamat, jenis_kelamin, created_at
		FROM customers WHERE id = $1`

	c := &models.Customer{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Nama, &c.NoHP, &c.Alamat, &c.JenisKelamin, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, nama, no_hp, alamat, jenis_kelamin, created_at
		FROM customers ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Nama, &c.NoHP, &c.Alamat, &c.JenisKelamin, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// ListPurchases returns the vehicles a customer has bought, newest first.
func (r *CustomerRepository) ListPurchases(ctx context.Context, customerID int) ([]models.CustomerPurchase, error) {
	query := `
		SELECT s.id, s.vehicle_id, v.merk, v.series, v.tahun, s.total_harga, s.tanggal_jual
		FROM sales s
		JOIN vehicles v ON v.id = s.vehicle_id
		WHERE s.customer_id = $1
		ORDER BY s.tanggal_jual DESC`

	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []models.CustomerPurchase
	for rows.Next() {
		var p models.CustomerPurchase
		if err := rows.Scan(&p.SaleID, &p.VehicleID, &p.Merk, &p.Series, &p.Tahun, &p.TotalHarga, &p.TanggalJual); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
