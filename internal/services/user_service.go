package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/auth"
	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be admin or sales")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
)

type UserService struct {
	repo       *repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{repo: repo, jwtManager: jwtManager}
}

// Signup registers a new account. New accounts start unapproved with the
// sales role; an admin promotes them later.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Nama:         req.Nama,
		NoHP:         req.NoHP,
		PasswordHash: hash,
		Approved:     false,
		Role:         models.RoleSales,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("new account registered, pending approval")

	return user, nil
}

// Login authenticates by email and password. Unapproved users can log in;
// the middleware keeps them out of everything except the pending surface.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) ListPending(ctx context.Context) ([]models.User, error) {
	return s.repo.ListPending(ctx)
}

func (s *UserService) Approve(ctx context.Context, id int) error {
	if err := s.repo.SetApproved(ctx, id, true); err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("user approved")
	return nil
}

func (s *UserService) Reject(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ChangeRole updates a user's role. Admins cannot change their own role,
// which keeps at least one admin able to manage the rest.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID int, role string) error {
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}
	if actorID == targetID {
		return ErrSelfRoleChange
	}
	if err := s.repo.SetRole(ctx, targetID, role); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": targetID,
		"role":    role,
	}).Info("user role changed")
	return nil
}
