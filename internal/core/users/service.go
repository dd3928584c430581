package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Usernames: 3-30 characters of letters, digits, dots, hyphens and underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,30}$`)

const minPasswordLength = 6

type userService struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	logger     *slog.Logger
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, tokens TokenIssuer, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo:   userRepo,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates an account and returns it with a fresh token
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)

	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	// Check before hashing; the unique index still guards the race.
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		ProfilePic:   req.ProfilePic,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return &AuthResponse{User: user, Token: token}, nil
}

// Login checks credentials and returns a fresh token
func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]*User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser applies the non-nil fields of req. A new password is re-hashed.
func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.ProfilePic != nil {
		user.ProfilePic = *req.ProfilePic
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	return s.userRepo.Update(ctx, user)
}

// DeleteUser removes the account and everything it owns
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// AddFavorite records videoID as one of the user's favorites
func (s *userService) AddFavorite(ctx context.Context, userID, videoID string) (*User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidID
	}
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, ErrInvalidID
	}
	return s.userRepo.AddFavorite(ctx, userID, videoID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUsername(username string) error {
	if username == "" {
		return &InvalidUsernameError{Username: username, Reason: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return &InvalidUsernameError{
			Username: username,
			Reason:   "must be 3-30 characters of letters, digits, '.', '-' or '_'",
		}
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &InvalidEmailError{Email: email}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &WeakPasswordError{Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return &WeakPasswordError{Reason: "must be at most 72 bytes"}
	}
	return nil
}
