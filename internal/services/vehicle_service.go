package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
	"showroom-backend/internal/storage"
	"showroom-backend/internal/timeutil"
)

var ErrStorageUnavailable = errors.New("image storage is not configured")

type VehicleService struct {
	repo    *repositories.VehicleRepository
	storage *storage.S3Client
	cache   SnapshotInvalidator
}

// SnapshotInvalidator drops cached analytics after inventory mutations.
type SnapshotInvalidator interface {
	InvalidateSnapshots(ctx context.Context)
}

func NewVehicleService(repo *repositories.VehicleRepository, s3 *storage.S3Client, cache SnapshotInvalidator) *VehicleService {
	return &VehicleService{repo: repo, storage: s3, cache: cache}
}

func (s *VehicleService) List(ctx context.Context, status string) ([]models.Vehicle, error) {
	if status != "" && status != models.StatusTersedia && status != models.StatusTerjual {
		return nil, fmt.Errorf("unknown status filter %q", status)
	}
	return s.repo.List(ctx, status)
}

func (s *VehicleService) GetByID(ctx context.Context, id int) (*models.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	if req.Merk == "" {
		return nil, errors.New("merk is required")
	}
	if req.HargaJual < 0 || req.HargaBeli < 0 {
		return nil, errors.New("prices cannot be negative")
	}

	v, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logrus.WithFields(logrus.Fields{
		"vehicle_id": v.ID,
		"merk":       v.Merk,
		"series":     v.Series,
	}).Info("vehicle added to inventory")
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, id int, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	v, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	logrus.WithField("vehicle_id", id).Info("vehicle removed from inventory")
	return nil
}

// UploadImage stores the image, records its public URL and returns the
// updated vehicle. The object key embeds the vehicle id and upload time so
// re-uploads never collide.
func (s *VehicleService) UploadImage(ctx context.Context, id int, data []byte, contentType string) (*models.Vehicle, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("car-%d-%d", id, timeutil.Now().Unix())
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateImageURL(ctx, id, url); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateSnapshots(ctx)
	}
}
