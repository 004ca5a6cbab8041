// internal/utils/pagination.go
package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DirectionNext = "next"
	DirectionPrev = "prev"
)

// CursorParams describe a keyset pagination request. The cursor is the
// id of the boundary row from a previous page; the engine re-reads its
// created_at and filters strictly past (created_at, id).
type CursorParams struct {
	Cursor    string `json:"cursor"`
	Direction string `json:"direction"`
	Limit     int    `json:"limit"`
}

type CursorPage[T any] struct {
	Items      []T     `json:"items"`
	Total      int64   `json:"total"`
	NextCursor *string `json:"next_cursor"`
	PrevCursor *string `json:"prev_cursor"`
	HasMore    bool    `json:"has_more"`
}

// Keyed is satisfied by models embedding BaseModel.
type Keyed interface {
	CursorKey() string
}

func GetCursorParams(c *gin.Context, defaultLimit, maxLimit int) CursorParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	direction := c.DefaultQuery("direction", DirectionNext)
	if direction != DirectionNext && direction != DirectionPrev {
		direction = DirectionNext
	}

	return CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: direction,
		Limit:     limit,
	}
}

type cursorBoundary struct {
	ID        string
	CreatedAt time.Time
}

// CursorPaginate runs keyset pagination over base, a query that already
// carries the model and business filters. db resolves the boundary row.
//
// Ordering is (created_at DESC, id DESC) for next and the mirrored
// ascending comparison for prev; ties on created_at break on id so the
// walk is total. Offset pagination duplicates or skips rows when
// inserts land mid-walk; seeking past the boundary tuple does not.
// limit+1 rows are fetched to learn has_more, and prev pages are
// re-reversed so responses are always newest-first.
//
// An unresolvable cursor (boundary row deleted since it was handed
// out) degrades to an unfiltered first page on every listing,
// uniformly, rather than erroring.
func CursorPaginate[T Keyed](db *gorm.DB, base *gorm.DB, p CursorParams) (*CursorPage[T], error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	q := base.Session(&gorm.Session{})
	if p.Cursor != "" {
		var boundary cursorBoundary
		err := db.Model(new(T)).Select("id", "created_at").Where("id = ?", p.Cursor).First(&boundary).Error
		switch {
		case err == nil:
			if p.Direction == DirectionPrev {
				q = q.Where("created_at > ? OR (created_at = ? AND id > ?)",
					boundary.CreatedAt, boundary.CreatedAt, boundary.ID)
			} else {
				q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
					boundary.CreatedAt, boundary.CreatedAt, boundary.ID)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Degrade to first page.
		default:
			return nil, err
		}
	}

	order := "created_at DESC, id DESC"
	if p.Direction == DirectionPrev {
		order = "created_at ASC, id ASC"
	}

	var items []T
	if err := q.Order(order).Limit(p.Limit + 1).Find(&items).Error; err != nil {
		return nil, err
	}

	hasMore := len(items) > p.Limit
	if hasMore {
		items = items[:p.Limit]
	}

	if p.Direction == DirectionPrev {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	page := &CursorPage[T]{Items: items, Total: total, HasMore: hasMore}
	if len(items) > 0 {
		if hasMore {
			id := items[len(items)-1].CursorKey()
			page.NextCursor = &id
		}
		if p.Cursor != "" {
			id := items[0].CursorKey()
			page.PrevCursor = &id
		}
	}

	return page, nil
}
