package service

import (
	"errors"
	"strings"

	"github.com/inkwell/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService wraps account registration and authentication.
type UserService struct {
	db *gorm.DB
}

// RegisterInput carries the fields accepted when creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register creates an account with a bcrypt-hashed password.
// The email must not already be registered.
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing db.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         input.Role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies the email/password pair and returns the matching account.
func (s *UserService) Login(email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// EnsureAuthor creates an author account if the email is not registered yet.
// Used by the startup bootstrap; blank fields disable it.
func (s *UserService) EnsureAuthor(username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	_, err := s.Register(RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     db.RoleAuthor,
	})
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	return err
}
