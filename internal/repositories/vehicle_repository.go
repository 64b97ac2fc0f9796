package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"showroom-backend/internal/models"
)

// ErrVehicleSold is returned when a mutation targets a vehicle that has
// already been sold.
var ErrVehicleSold = errors.New("vehicle already sold")

const vehicleColumns = `id, merk, tipe, model, series, body_type, variation, tahun,
	plat_nomor, warna, transmisi, bahan_bakar, kondisi, kilometer,
	harga_beli, harga_jual, tanggal_beli, deskripsi, status, image_url,
	previous_owners, registration_expiry, created_at, updated_at`

type VehicleRepository struct {
	DB *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := row.Scan(
		&v.ID, &v.Merk, &v.Tipe, &v.Model, &v.Series, &v.BodyType, &v.Variation, &v.Tahun,
		&v.PlatNomor, &v.Warna, &v.Transmisi, &v.BahanBakar, &v.Kondisi, &v.Kilometer,
		&v.HargaBeli, &v.HargaJual, &v.TanggalBeli, &v.Deskripsi, &v.Status, &v.ImageURL,
		&v.PreviousOwners, &v.RegistrationExpiry, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VehicleRepository) collect(rows pgx.Rows) ([]models.Vehicle, error) {
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) List(ctx context.Context, status string) ([]models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.DB.QueryRow(ctx, query, id))
}

func (r *VehicleRepository) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	query := `
		INSERT INTO vehicles (merk, tipe, model, series, body_type, variation, tahun,
			plat_nomor, warna, transmisi, bahan_bakar, kondisi, kilometer,
			harga_beli, harga_jual, tanggal_beli, deskripsi, previous_owners, registration_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + vehicleColumns

	return scanVehicle(r.DB.QueryRow(ctx, query,
		req.Merk, req.Tipe, req.Model, req.Series, req.BodyType, req.Variation, req.Tahun,
		req.PlatNomor, req.Warna, req.Transmisi, req.BahanBakar, req.Kondisi, req.Kilometer,
		req.HargaBeli, req.HargaJual, req.TanggalBeli, req.Deskripsi,
		req.PreviousOwners, req.RegistrationExpiry,
	))
}

// Update applies the non-nil fields of the request. Sold vehicles are
// immutable; the WHERE clause enforces that alongside the id match.
func (r *VehicleRepository) Update(ctx context.Context, id int, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Merk != nil {
		add("merk", *req.Merk)
	}
	if req.Tipe != nil {
		add("tipe", *req.Tipe)
	}
	if req.Model != nil {
		add("model", *req.Model)
	}
	if req.Series != nil {
		add("series", *req.Series)
	}
	if req.BodyType != nil {
		add("body_type", *req.BodyType)
	}
	if req.Variation != nil {
		add("variation", *req.Variation)
	}
	if req.Tahun != nil {
		add("tahun", *req.Tahun)
	}
	if req.PlatNomor != nil {
		add("plat_nomor", *req.PlatNomor)
	}
	if req.Warna != nil {
		add("warna", *req.Warna)
	}
	if req.Transmisi != nil {
		add("transmisi", *req.Transmisi)
	}
	if req.BahanBakar != nil {
		add("bahan_bakar", *req.BahanBakar)
	}
	if req.Kondisi != nil {
		add("kondisi", *req.Kondisi)
	}
	if req.Kilometer != nil {
		add("kilometer", *req.Kilometer)
	}
	if req.HargaBeli != nil {
		add("harga_beli", *req.HargaBeli)
	}
	if req.HargaJual != nil {
		add("harga_jual", *req.HargaJual)
	}
	if req.TanggalBeli != nil {
		add("tanggal_beli", *req.TanggalBeli)
	}
	if req.Deskripsi != nil {
		add("deskripsi", *req.Deskripsi)
	}
	if req.PreviousOwners != nil {
		add("previous_owners", *req.PreviousOwners)
	}
	if req.RegistrationExpiry != nil {
		add("registration_expiry", *req.RegistrationExpiry)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	query := fmt.Sprintf(
		`UPDATE vehicles SET %s WHERE id = $%d AND status = $%d RETURNING `+vehicleColumns,
		strings.Join(sets, ", "), idx, idx+1)
	args = append(args, id, models.StatusTersedia)

	v, err := scanVehicle(r.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing vehicle from a sold one.
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return nil, ErrVehicleSold
		}
		return nil, ErrNotFound
	}
	return v, err
}

func (r *VehicleRepository) UpdateImageURL(ctx context.Context, id int, imageURL string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE vehicles SET image_url = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		id, imageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an available vehicle. Sold vehicles keep their row so
// past sales stay consistent.
func (r *VehicleRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM vehicles WHERE id = $1 AND status = $2`, id, models.StatusTersedia)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return ErrVehicleSold
		}
		return ErrNotFound
	}
	return nil
}
