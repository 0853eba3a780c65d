package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthor       = errors.New("caller is not the author")
	ErrEmptyPost       = errors.New("post has no content")
	ErrEmptyComment    = errors.New("comment text is required")
	ErrCommentCycle    = errors.New("comment cannot be its own ancestor")
	ErrParentMismatch  = errors.New("parent comment belongs to another post")
)

type CreatePostRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Files       []PostFileReq `json:"files"`
}

type PostFileReq struct {
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

type AddCommentRequest struct {
	PostID   snowflake.ID  `json:"-"`
	ParentID *snowflake.ID `json:"parent_id"`
	Text     string        `json:"text"`
}

type Service interface {
	Create(ctx context.Context, req *CreatePostRequest) (*Post, error)
	Get(ctx context.Context, id snowflake.ID) (*Post, error)
	ListByContributor(ctx context.Context, contributorID snowflake.ID) ([]Post, error)
	Delete(ctx context.Context, id snowflake.ID) error

	// ToggleLike likes the post, or removes the caller's existing like.
	// Returns true when the post ends up liked.
	ToggleLike(ctx context.Context, postID snowflake.ID) (bool, error)

	AddComment(ctx context.Context, req *AddCommentRequest) (*Comment, error)
	Comments(ctx context.Context, postID snowflake.ID) ([]*CommentNode, error)
	DeleteComment(ctx context.Context, id snowflake.ID) error
	ToggleCommentLike(ctx context.Context, commentID snowflake.ID) (bool, error)
}
