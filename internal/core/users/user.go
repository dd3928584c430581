package users

import (
	"time"
)

// User is an account that can own channels, upload videos and react to them.
// PasswordHash never leaves the server.
type User struct {
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
	ID              string    `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	ProfilePic      string    `json:"profilePic" db:"profile_pic"`
	FavoriteVideos  []string  `json:"favoriteVideos" db:"favorite_videos"`
	LikedVideos     []string  `json:"likedVideos" db:"liked_videos"`
	UploadedVideos  []string  `json:"uploadedVideos" db:"uploaded_videos"`
	CreatedChannels []string  `json:"createdChannels" db:"created_channels"`
}

// RegisterRequest represents the input for creating an account
type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// LoginRequest represents email/password credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateUserRequest carries the editable account fields. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	ProfilePic *string `json:"profilePic,omitempty"`
	Password   *string `json:"password,omitempty"`
}
