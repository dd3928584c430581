package channels

import (
	"time"

	"Theatrum/internal/core/videos"
)

// Channel is a user-owned collection of videos that others can subscribe to
type Channel struct {
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	OwnerID         string    `json:"owner" db:"owner_id"`
	Logo            string    `json:"logo" db:"logo"`
	Banner          string    `json:"banner" db:"banner"`
	Subscribers     []string  `json:"subscribers" db:"subscribers"`
	Videos          []string  `json:"videos" db:"videos"`
	SubscriberCount int       `json:"subscriberCount" db:"-"`
}

// ChannelWithVideos is a channel with its video ids replaced by the full
// video documents in the JSON form.
type ChannelWithVideos struct {
	*Channel
	Videos []*videos.Video `json:"videos"`
}

// CreateChannelRequest represents the input for creating a channel
type CreateChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`
}

// UpdateChannelRequest carries the editable channel fields. Nil fields are left unchanged.
type UpdateChannelRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Banner      *string `json:"banner,omitempty"`
}

// SubscribeRequest is the body of a subscription toggle
type SubscribeRequest struct {
	UserID string `json:"userId"`
}

// SubscribeResult reports the state after a subscription toggle
type SubscribeResult struct {
	Channel    *Channel `json:"channel"`
	Subscribed bool     `json:"subscribed"`
}
