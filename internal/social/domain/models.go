package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Follow is a directed edge from a user to a contributor profile.
type Follow struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	FollowerID    snowflake.ID `gorm:"uniqueIndex:idx_follow_pair;not null" json:"follower_id"`
	ContributorID snowflake.ID `gorm:"uniqueIndex:idx_follow_pair;index;not null" json:"contributor_id"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

// Block hides two users from each other.
type Block struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	BlockerID snowflake.ID `gorm:"uniqueIndex:idx_block_pair;not null" json:"blocker_id"`
	BlockedID snowflake.ID `gorm:"uniqueIndex:idx_block_pair;index;not null" json:"blocked_id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
}

func (Block) TableName() string { return "blocks" }
