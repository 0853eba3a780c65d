package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidWord     = errors.New("word is required")
	ErrWordExists      = errors.New("word already banned")
	ErrWordNotFound    = errors.New("banned word not found")
	ErrContentRejected = errors.New("content contains banned words")
)

type Service interface {
	AddWord(ctx context.Context, word string) (*BannedWord, error)
	ListWords(ctx context.Context) ([]BannedWord, error)
	RemoveWord(ctx context.Context, id snowflake.ID) error

	// Screen returns ErrContentRejected when any banned word appears in text
	// as a whole word, case-insensitively. Substrings of longer words pass.
	Screen(ctx context.Context, text string) error
}
