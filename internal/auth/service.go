package auth

import (
	"errors"
	"log"
	"time"

	"townkeeper/internal/common"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// =============================================
// 1. SERVICE STRUCTURE
// =============================================

type Service struct {
	db     *gorm.DB
	secret []byte
}

func NewService(db *gorm.DB, jwtSecret []byte) *Service {
	return &Service{db: db, secret: jwtSecret}
}

// ErrInvalidCredentials keeps username-vs-password failures
// indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// =============================================
// 2. REGISTRATION & LOGIN
// =============================================

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(req *RegisterRequest) (*User, error) {
	var existing int64
	if err := s.db.Model(&User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&existing).Error; err != nil {
		return nil, common.Internal("failed to check existing users", err)
	}
	if existing > 0 {
		return nil, common.Conflictf("username or email already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.Internal("failed to hash password", err)
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	user.ID = uuid.New()

	if err := s.db.Create(user).Error; err != nil {
		return nil, common.Internal("failed to create user", err)
	}

	log.Printf("👤 Registered user %s", user.Username)
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(req *LoginRequest) (*User, *TokenPair, error) {
	var user User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, common.Internal("failed to get user", err)
	}

	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := GenerateTokenPair(s.secret, user.ID)
	if err != nil {
		return nil, nil, common.Internal("failed to issue tokens", err)
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login", &now).Error; err != nil {
		return nil, nil, common.Internal("failed to update last login", err)
	}

	return &user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := ParseToken(s.secret, refreshToken, "refresh")
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user User
	if err := s.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	tokens, err := GenerateTokenPair(s.secret, user.ID)
	if err != nil {
		return nil, common.Internal("failed to issue tokens", err)
	}
	return tokens, nil
}
