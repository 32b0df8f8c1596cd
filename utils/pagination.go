package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is the page window of a list endpoint and the "pagination"
// member of its response.
type Pagination struct {
	Page     int   `json:"page"`
	Limit    int   `json:"per_page"`
	Offset   int   `json:"-"`
	Total    int64 `json:"total"`
	LastPage int   `json:"total_pages"`
	HasNext  bool  `json:"has_next"`
}

// NewPagination reads ?page= and ?limit=. Bad values fall back to the
// defaults and the limit is capped at MaxPaginationLimit.
func NewPagination(c *gin.Context) *Pagination {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", DefaultPaginationLimit)
	if limit > MaxPaginationLimit {
		limit = MaxPaginationLimit
	}
	return &Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// SetTotal records the number of matching rows and derives the last page.
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	if p.Limit > 0 {
		p.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	p.HasNext = p.Page < p.LastPage
}
