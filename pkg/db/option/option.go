package option

import (
	"fmt"
	"strings"
	"time"

	"github.com/blessnhq/blessn/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryOptionFunc func(db *gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

type Operator string

const (
	EQ  Operator = "="
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator adds a single comparison predicate.
func ApplyOperator(cond Condition) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s %s ?", cond.Field, cond.Operator), cond.Value)
	})
}

// ApplyPagination decodes the page token into a keyset predicate and caps the
// row count at pageSize+1 so callers can detect a further page.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 10
		}

		if token := strings.TrimSpace(page.PageToken); token != "" {
			cursor, err := pagination.DecodeCursor(token)
			if err == nil && cursor != nil && cursor.CreatedAt != "" && cursor.ID != "" {
				if createdAt, parseErr := time.Parse(time.RFC3339, cursor.CreatedAt); parseErr == nil {
					db = db.Where(
						"(created_at < ?) OR (created_at = ? AND id < ?)",
						createdAt, createdAt, cursor.ID,
					)
				}
			}
		}

		return db.Limit(size + 1)
	})
}

// WithSortBy applies an ORDER BY clause.
func WithSortBy(order string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(order) == "" {
			return db
		}
		return db.Order(order)
	})
}

// WithQuerySortBy validates a caller-supplied sort field against an allow-list.
func WithQuerySortBy(field, direction string, allowed map[string]bool) string {
	field = strings.TrimSpace(field)
	if !allowed[field] {
		return ""
	}
	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction != "asc" && direction != "desc" {
		direction = "desc"
	}
	return fmt.Sprintf("%s %s, id %s", field, direction, direction)
}
