package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidName      = errors.New("name is required")
	ErrNameTaken        = errors.New("name already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOccasionNotFound = errors.New("occasion not found")
)

type Service interface {
	CreateCategory(ctx context.Context, name, icon string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id snowflake.ID) error

	CreateOccasion(ctx context.Context, name string) (*Occasion, error)
	ListOccasions(ctx context.Context) ([]Occasion, error)
	DeleteOccasion(ctx context.Context, id snowflake.ID) error
}
