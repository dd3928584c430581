package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Exists(ctx context.Context, id string) (bool, error)

	// Update writes username, email, profile picture and password hash.
	Update(ctx context.Context, user *User) (*User, error)

	// AddFavorite appends videoID to the user's favorites unless it is already there.
	AddFavorite(ctx context.Context, userID, videoID string) (*User, error)

	// Delete removes the user, every channel they own and every video on
	// those channels, in one transaction.
	Delete(ctx context.Context, id string) error
}

// TokenIssuer mints bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error)

	// DeleteUser removes the account together with its channels and their videos.
	DeleteUser(ctx context.Context, id string) error

	AddFavorite(ctx context.Context, userID, videoID string) (*User, error)
}
