package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrAlreadyBlocked   = errors.New("already blocked")
	ErrNotBlocked       = errors.New("not blocked")
	ErrSelfBlock        = errors.New("cannot block yourself")
)

type Service interface {
	Follow(ctx context.Context, contributorID snowflake.ID) (*Follow, error)
	Unfollow(ctx context.Context, contributorID snowflake.ID) error
	MyFollows(ctx context.Context) ([]Follow, error)
	FollowerCount(ctx context.Context, contributorID snowflake.ID) (int64, error)

	Block(ctx context.Context, blockedID snowflake.ID) (*Block, error)
	Unblock(ctx context.Context, blockedID snowflake.ID) error
	MyBlocks(ctx context.Context) ([]Block, error)
}
