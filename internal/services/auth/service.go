package auth

import (
	"context"
	"errors"
	"time"

	"github.com/davidobi-dev/threadcart-backend/internal/adapters/repository"
	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/davidobi-dev/threadcart-backend/utils"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, input models.RegisterInput) (models.User, error)
	Login(ctx context.Context, input models.LoginInput) (string, models.User, error)
}

type service struct {
	users repository.UserRepository
	v     *validator.Validate
}

func NewService(users repository.UserRepository) Service {
	return &service{users: users, v: validator.New()}
}

func (s *service) Register(ctx context.Context, input models.RegisterInput) (models.User, error) {
	if err := s.v.Struct(input); err != nil {
		return models.User{}, domain.Invalid("invalid registration payload: %v", err)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, domain.Conflict("email is already registered")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	role := input.Role
	if role == "" {
		role = "customer"
	}
	now := time.Now()
	user := models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, domain.Conflict("email is already registered")
		}
		return models.User{}, err
	}
	return created, nil
}

func (s *service) Login(ctx context.Context, input models.LoginInput) (string, models.User, error) {
	if err := s.v.Struct(input); err != nil {
		return "", models.User{}, domain.Invalid("invalid login payload: %v", err)
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", models.User{}, domain.Invalid("invalid email or password")
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", models.User{}, domain.Invalid("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}
