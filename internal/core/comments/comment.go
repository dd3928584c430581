package comments

import (
	"time"
)

// Comment is a single node of a video's comment thread.
// Top-level comments have a nil ParentID. Comments are append-only: once
// written, none of these fields change.
type Comment struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ParentID   *string   `json:"parentId,omitempty" db:"parent_id"`
	ID         string    `json:"id" db:"id"`
	VideoID    string    `json:"videoId" db:"video_id"`
	AuthorID   string    `json:"userId" db:"author_id"`
	AuthorName string    `json:"username" db:"author_name"`
	Text       string    `json:"text" db:"text"`
}

// CreateCommentRequest is the input for posting a top-level comment or a reply.
// Username is denormalised onto the comment at write time.
type CreateCommentRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// IsReply reports whether the comment hangs off another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

func (c *Comment) clone() *Comment {
	cp := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	return &cp
}
