package services

import (
	"context"
	"errors"

	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
)

type CustomerService struct {
	repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.Nama == "" {
		return nil, errors.New("nama is required")
	}
	if req.NoHP == "" {
		return nil, errors.New("no_hp is required")
	}
	return s.repo.Create(ctx, req)
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) GetWithPurchases(ctx context.Context, id int) (*models.CustomerWithPurchases, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	purchases, err := s.repo.ListPurchases(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.CustomerWithPurchases{
		Customer:  *customer,
		Purchases: purchases,
	}, nil
}
