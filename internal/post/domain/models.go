package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Post is contributor-authored content shown in the ranked feed.
type Post struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	ContributorID snowflake.ID `gorm:"index;not null" json:"contributor_id"`

	Title       string `gorm:"type:text" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Files []PostFile `gorm:"foreignKey:PostID" json:"files,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

type PostFile struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	PostID   snowflake.ID `gorm:"index;not null" json:"post_id"`
	FileURL  string       `gorm:"type:text;not null" json:"file_url"`
	FileType string       `gorm:"type:text" json:"file_type,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PostFile) TableName() string { return "post_files" }

// Like is an existence marker, unique per (user, post).
type Like struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"uniqueIndex:idx_like_pair;not null" json:"user_id"`
	PostID    snowflake.ID `gorm:"uniqueIndex:idx_like_pair;index;not null" json:"post_id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// Comment may reference a parent comment, forming a reply tree.
type Comment struct {
	ID       snowflake.ID  `gorm:"primaryKey" json:"id"`
	PostID   snowflake.ID  `gorm:"index;not null" json:"post_id"`
	UserID   snowflake.ID  `gorm:"index;not null" json:"user_id"`
	ParentID *snowflake.ID `gorm:"index" json:"parent_id,omitempty"`

	Text string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

type CommentLike struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"uniqueIndex:idx_comment_like_pair;not null" json:"user_id"`
	CommentID snowflake.ID `gorm:"uniqueIndex:idx_comment_like_pair;index;not null" json:"comment_id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (CommentLike) TableName() string { return "comment_likes" }

// CommentNode is one rendered comment with its replies and like count.
type CommentNode struct {
	Comment Comment        `json:"comment"`
	Likes   int64          `json:"likes"`
	Replies []*CommentNode `json:"replies,omitempty"`
}
