package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// UnknownAuthorName is shown in feeds when an author can no longer be resolved.
const UnknownAuthorName = "Unknown"

type Post struct {
	ID          string      `json:"id"`
	AuthorID    uuid.UUID   `json:"author_id"`
	Description string      `json:"description"`
	MediaURLs   []string    `json:"media_urls"`
	Likes       []uuid.UUID `json:"likes"`
	Comments    []Comment   `json:"comments"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func (p *Post) FindComment(commentID uuid.UUID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// FeedPost is a post with author names resolved for display.
type FeedPost struct {
	ID              string        `json:"id"`
	AuthorID        uuid.UUID     `json:"author_id"`
	AuthorName      string        `json:"author_name"`
	AuthorAvatarURL *string       `json:"author_avatar_url,omitempty"`
	Description     string        `json:"description"`
	MediaURLs       []string      `json:"media_urls"`
	Likes           []uuid.UUID   `json:"likes"`
	Comments        []FeedComment `json:"comments"`
	CreatedAt       time.Time     `json:"created_at"`
}

type FeedComment struct {
	ID         uuid.UUID  `json:"id"`
	AuthorID   uuid.UUID  `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type PostInput struct {
	Description string `json:"description" form:"description" validate:"required,max=2000"`
}

type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// Upload is a file received from a client, ready to be handed to the blob store.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}
