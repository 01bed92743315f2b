package services

import (
	"context"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelez/postboard-be/internal/models"
)

// TokenIssuer is the part of the session token codec the user service needs
// to hand out tokens at login.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string `validate:"required,min=3,max=32"`
	Password  string `validate:"required,min=8"`
	Age       *int32 `validate:"omitempty,gte=0,lte=150"`
	FirstName string `validate:"max=64"`
	LastName  string `validate:"max=64"`
}

// UserService provides business logic for registration, login and lookup.
type UserService struct {
	users    UserRepository
	tokens   TokenIssuer
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(users UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Register creates a new user, hashing their password. A duplicate username
// returns ErrUsernameTaken; input that fails validation returns a descriptive
// error. Either way no partial record is left behind.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid registration input: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Age:          input.Age,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a session token for the user.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both return ErrLoginFailed.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrLoginFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrLoginFailed
	}

	return s.tokens.Issue(user.ID.Hex())
}

// FindByID retrieves a single user by their id. A missing or malformed id
// returns ErrNotFound, never a panic.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

var _ UserServiceProvider = (*UserService)(nil)
