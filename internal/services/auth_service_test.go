// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bovita/catalog-backend/internal/config"
	"github.com/bovita/catalog-backend/internal/models"
	"github.com/bovita/catalog-backend/internal/utils"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	return NewAuthService(db, cfg)
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Username: "shopper1",
		Email:    "shopper@example.com",
		Password: "Str0ng!pass",
	}
}

func TestRegister_CreatesCustomerAccount(t *testing.T) {
	service := setupAuthService(t)

	resp, err := service.Register(validRegisterRequest())

	require.NoError(t, err)
	assert.Equal(t, models.UserTypeCustomer, resp.User.UserType)
	assert.Equal(t, models.UserStatusActive, resp.User.Status)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.NotEmpty(t, resp.User.PasswordHash)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(models.UserTypeCustomer), claims.UserType)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	service := setupAuthService(t)

	req := validRegisterRequest()
	req.Password = "short"

	_, err := service.Register(req)
	assert.Error(t, err)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(validRegisterRequest())
	require.NoError(t, err)

	dup := validRegisterRequest()
	dup.Username = "shopper2"
	_, err = service.Register(dup)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email already exists")
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(validRegisterRequest())
	require.NoError(t, err)

	dup := validRegisterRequest()
	dup.Email = "other@example.com"
	_, err = service.Register(dup)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username already taken")
}

func TestLogin_Success(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(validRegisterRequest())
	require.NoError(t, err)

	resp, err := service.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "Str0ng!pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(validRegisterRequest())
	require.NoError(t, err)

	_, err = service.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "Wr0ng!pass1",
	})

	assert.EqualError(t, err, "invalid email or password")
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "Str0ng!pass",
	})

	assert.EqualError(t, err, "invalid email or password")
}

func TestLogin_SuspendedAccount(t *testing.T) {
	service := setupAuthService(t)

	resp, err := service.Register(validRegisterRequest())
	require.NoError(t, err)

	service.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("status", models.UserStatusSuspended)

	_, err = service.Login(&LoginRequest{
		Email:    "shopper@example.com",
		Password: "Str0ng!pass",
	})

	assert.EqualError(t, err, "account is suspended")
}

func TestGetProfile(t *testing.T) {
	service := setupAuthService(t)

	resp, err := service.Register(validRegisterRequest())
	require.NoError(t, err)

	user, err := service.GetProfile(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "shopper1", user.Username)

	_, err = service.GetProfile(uuid.New())
	assert.EqualError(t, err, "user not found")
}
