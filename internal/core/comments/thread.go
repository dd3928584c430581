package comments

import (
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Thread holds the comment tree of one video as an arena: every comment is
// indexed by id, carries its parent id, and each parent keeps the ordered ids
// of its children. Nothing in here recurses, so depth is unbounded.
//
// A Thread is safe for concurrent use.
type Thread struct {
	mu       sync.Mutex
	byID     map[string]*Comment
	children map[string][]string
	roots    []string
	order    []string
	videoID  string
	newID    func() string
	now      func() time.Time
}

// ThreadOption customises a Thread at construction time.
type ThreadOption func(*Thread)

// WithIDGenerator overrides how new comment ids are allocated.
func WithIDGenerator(gen func() string) ThreadOption {
	return func(t *Thread) {
		t.newID = gen
	}
}

// WithClock overrides the timestamp source for new comments.
func WithClock(now func() time.Time) ThreadOption {
	return func(t *Thread) {
		t.now = now
	}
}

// NewThread creates an empty thread for a video.
func NewThread(videoID string, opts ...ThreadOption) *Thread {
	t := &Thread{
		videoID:  videoID,
		byID:     make(map[string]*Comment),
		children: make(map[string][]string),
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LoadThread rebuilds a thread from stored comments given in insertion order.
func LoadThread(videoID string, stored []*Comment, opts ...ThreadOption) (*Thread, error) {
	t := NewThread(videoID, opts...)
	for _, c := range stored {
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if c.ParentID != nil {
			if _, ok := t.byID[*c.ParentID]; !ok {
				return nil, fmt.Errorf("%w: comment %s, parent %s", ErrOrphanComment, c.ID, *c.ParentID)
			}
		}
		t.insertLocked(c.clone())
	}
	return t, nil
}

// VideoID returns the video the thread belongs to.
func (t *Thread) VideoID() string {
	return t.videoID
}

// Len returns the number of comments in the thread, replies included.
func (t *Thread) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID)
}

// AppendTopLevel appends a new comment directly under the video.
func (t *Thread) AppendTopLevel(authorID, authorName, text string) *Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.newCommentLocked(nil, authorID, authorName, text)
	t.insertLocked(c)
	return c.clone()
}

// AppendReply appends a reply as the last child of parentID.
// If parentID is not in the thread it returns ErrParentNotFound and the
// thread is left exactly as it was.
func (t *Thread) AppendReply(parentID, authorID, authorName, text string) (*Comment, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[parentID]; !ok {
		return nil, ErrParentNotFound
	}

	parent := parentID
	c := t.newCommentLocked(&parent, authorID, authorName, text)
	t.insertLocked(c)
	return c.clone(), nil
}

// Find returns a copy of the comment with the given id.
func (t *Thread) Find(id string) (*Comment, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

// Depth returns how many ancestors a comment has. Top-level comments are depth 0.
func (t *Thread) Depth(id string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.byID[id]
	if !ok {
		return 0, false
	}
	depth := 0
	for c.ParentID != nil {
		c = t.byID[*c.ParentID]
		depth++
	}
	return depth, true
}

// Tree builds the nested view of the whole thread.
// Replies appear under their parent in the order they were appended.
func (t *Thread) Tree() []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	nodes := make(map[string]*Node, len(t.byID))
	roots := make([]*Node, 0, len(t.roots))

	// Insertion order guarantees a parent's node exists before any reply to it.
	for _, id := range t.order {
		c := t.byID[id]
		n := &Node{Comment: *c.clone(), Replies: []*Node{}}
		nodes[id] = n
		if c.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent := nodes[*c.ParentID]
		parent.Replies = append(parent.Replies, n)
	}
	return roots
}

// All walks the thread in pre-order: each comment is followed by its
// replies, siblings in insertion order. The sequence is lazy and can be
// ranged over any number of times. Comments appended during a walk may or
// may not be visited.
func (t *Thread) All() iter.Seq[*Comment] {
	return func(yield func(*Comment) bool) {
		t.mu.Lock()
		stack := make([]string, 0, len(t.roots))
		for i := len(t.roots) - 1; i >= 0; i-- {
			stack = append(stack, t.roots[i])
		}
		t.mu.Unlock()

		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			t.mu.Lock()
			c := t.byID[id].clone()
			kids := t.children[id]
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
			t.mu.Unlock()

			if !yield(c) {
				return
			}
		}
	}
}

func (t *Thread) newCommentLocked(parentID *string, authorID, authorName, text string) *Comment {
	id := t.newID()
	// Random 128-bit ids do not collide in practice; a custom generator might.
	for {
		if _, taken := t.byID[id]; !taken {
			break
		}
		id = t.newID()
	}
	return &Comment{
		ID:         id,
		VideoID:    t.videoID,
		ParentID:   parentID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  t.now(),
	}
}

func (t *Thread) insertLocked(c *Comment) {
	t.byID[c.ID] = c
	t.order = append(t.order, c.ID)
	if c.ParentID == nil {
		t.roots = append(t.roots, c.ID)
		return
	}
	t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
}
