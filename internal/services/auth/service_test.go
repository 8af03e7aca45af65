package auth

import (
	"context"
	"testing"

	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(models.User{ID: primitive.NewObjectID(), Email: "ada@example.com"}, nil).Once()

	_, err := svc.Register(context.Background(), models.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(models.User{}, mongo.ErrNoDocuments).Once()
	users.On("Insert", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		if u.Role != "customer" || u.Password == "correct-horse" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("correct-horse")) == nil
	})).Return(models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Role: "customer"}, nil).Once()

	created, err := svc.Register(context.Background(), models.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "customer", created.Role)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(models.User{Email: "ada@example.com", Password: string(hash)}, nil).Once()

	_, _, err = svc.Login(context.Background(), models.LoginInput{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.True(t, domain.IsValidation(err))
}

func TestLogin_IssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := new(MockUserRepository)
	svc := NewService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Role: "admin", Password: string(hash)}, nil).Once()

	token, user, err := svc.Login(context.Background(), models.LoginInput{
		Email: "ada@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Role)
}
