package videos

import (
	"time"
)

// Video is a hosted video and its engagement state.
// LikedBy and DislikedBy never share a user id.
type Video struct {
	UploadDate   time.Time       `json:"uploadDate" db:"upload_date"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
	Channel      *ChannelSummary `json:"channel,omitempty" db:"-"`
	ID           string          `json:"id" db:"id"`
	Title        string          `json:"title" db:"title"`
	Description  string          `json:"description" db:"description"`
	URL          string          `json:"url" db:"url"`
	ThumbnailURL string          `json:"thumbnailUrl" db:"thumbnail_url"`
	ChannelID    string          `json:"channelId" db:"channel_id"`
	UploaderID   string          `json:"uploaderId" db:"uploader_id"`
	Type         Category        `json:"type" db:"type"`
	Metadata     Metadata        `json:"metadata"`
	Tags         []string        `json:"tags" db:"tags"`
	LikedBy      []string        `json:"likedBy" db:"liked_by"`
	DislikedBy   []string        `json:"dislikedBy" db:"disliked_by"`
	Views        int64           `json:"views" db:"views"`
	Likes        int             `json:"likes" db:"-"`
	Dislikes     int             `json:"dislikes" db:"-"`
}

// Metadata is what the media prober reports about the uploaded file.
type Metadata struct {
	Resolution string `json:"resolution" db:"resolution"` // "WxH"
	Codec      string `json:"codec" db:"codec"`
	Duration   int    `json:"duration" db:"duration"` // seconds, rounded
}

// ChannelSummary is the slice of channel data embedded into video responses.
type ChannelSummary struct {
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Banner string `json:"banner"`
}

// RefreshCounts recomputes Likes and Dislikes from the reaction sets.
func (v *Video) RefreshCounts() {
	v.Likes = len(v.LikedBy)
	v.Dislikes = len(v.DislikedBy)
}

// CreateVideoRequest represents the input for creating a video document directly
type CreateVideoRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	ChannelID    string   `json:"channelId"`
	UploaderID   string   `json:"uploaderId"`
	Type         string   `json:"type"`
	Metadata     Metadata `json:"metadata"`
	Tags         []string `json:"tags"`
}

// UpdateVideoRequest carries the editable fields of a video.
// Nil fields are left unchanged.
type UpdateVideoRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
}

// ReactionRequest is the body of like and dislike calls
type ReactionRequest struct {
	UserID string `json:"userId"`
}
