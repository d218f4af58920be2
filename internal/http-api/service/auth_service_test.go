package service

import (
	"testing"
	"time"

	"stayspot/internal/config"
	"stayspot/internal/http-api/middleware/auth"
	"stayspot/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepo mocks the UserRepository interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret-key-that-is-long-enough!",
		AccessTokenTTL: time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByUsername", "johnsmith").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "john@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

		user, err := svc.Register("johnsmith", "password123", "john@example.com", "John", "Smith")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "johnsmith", user.Username)
		assert.Equal(t, "John", user.FirstName)
		// Stored hash must verify against the original password
		assert.NoError(t, auth.VerifyPassword(user.Password, "password123"))
		userRepo.AssertExpectations(t)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByUsername", "johnsmith").Return(&models.User{Username: "johnsmith"}, nil)

		_, err := svc.Register("johnsmith", "password123", "john@example.com", "John", "Smith")

		assert.ErrorIs(t, err, ErrNameInUse)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("EmailTaken", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByUsername", "johnsmith").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", "john@example.com").Return(&models.User{Email: "john@example.com"}, nil)

		_, err := svc.Register("johnsmith", "password123", "john@example.com", "John", "Smith")

		assert.ErrorIs(t, err, ErrEmailInUse)
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)
	stored := &models.User{ID: "user-1", Username: "johnsmith", Password: hash}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByUsername", "johnsmith").Return(stored, nil)

		token, user, err := svc.Login("johnsmith", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "user-1", user.ID)

		// The issued token must validate and carry the right claims
		claims, err := svc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "johnsmith", claims.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByUsername", "johnsmith").Return(stored, nil)

		token, user, err := svc.Login("johnsmith", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login("ghost", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := NewAuthService(new(MockUserRepo), testAuthConfig())

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthService(new(MockUserRepo), &config.Config{
			JWTSecret:      "a-completely-different-signing-secret",
			AccessTokenTTL: time.Hour,
		})

		userRepo := new(MockUserRepo)
		issuer := NewAuthService(userRepo, testAuthConfig())
		hash, _ := auth.HashPassword("password123")
		userRepo.On("FindByUsername", "johnsmith").
			Return(&models.User{ID: "user-1", Username: "johnsmith", Password: hash}, nil)
		token, _, err := issuer.Login("johnsmith", "password123")
		assert.NoError(t, err)

		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_GetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "johnsmith"}, nil)

		user, err := svc.GetUser("user-1")

		assert.NoError(t, err)
		assert.Equal(t, "johnsmith", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testAuthConfig())

		userRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetUser("missing")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
