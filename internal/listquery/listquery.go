// Package listquery turns raw list query parameters into a canonical page
// request and derives the pagination metadata returned alongside a page.
package listquery

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultTake = 10
	MaxTake     = 20
	DefaultPage = 1
)

// FilterKeys are the book fields a list request may filter on.
var FilterKeys = []string{"title", "author", "desc"}

// Filter maps a book field to the substring it must contain. A key is
// present only when the request carried it, even with an empty value.
type Filter map[string]string

type ListQuery struct {
	Take   int
	Page   int
	Filter Filter
}

type Meta struct {
	Take      int    `json:"take"`
	Page      int    `json:"page"`
	Total     int64  `json:"total"`
	TotalPage int    `json:"totalPage"`
	Filter    Filter `json:"filter,omitempty"`
}

// Normalize builds a ListQuery from query values. Repeated parameters use
// their first value. take and page always come out as positive integers,
// with page capped so the offset of the requested page never overflows.
func Normalize(values url.Values) ListQuery {
	q := ListQuery{
		Take:   parsePositive(values, "take", DefaultTake),
		Page:   parsePositive(values, "page", DefaultPage),
		Filter: Filter{},
	}

	if q.Take > MaxTake {
		q.Take = MaxTake
	}
	// take*page must fit in an int for Skip to stay non-negative.
	if maxPage := math.MaxInt / q.Take; q.Page > maxPage {
		q.Page = maxPage
	}

	for _, key := range FilterKeys {
		if vs, ok := values[key]; ok {
			q.Filter[key] = first(vs)
		}
	}

	return q
}

func (q ListQuery) Skip() int {
	return q.Take*q.Page - q.Take
}

func NewMeta(q ListQuery, total int64) Meta {
	m := Meta{
		Take:      q.Take,
		Page:      q.Page,
		Total:     total,
		TotalPage: TotalPages(total, q.Take),
	}
	if len(q.Filter) > 0 {
		m.Filter = q.Filter
	}
	return m
}

// TotalPages is ceil(total/take), never less than 1.
func TotalPages(total int64, take int) int {
	if take < 1 {
		take = 1
	}
	pages := int((total + int64(take) - 1) / int64(take))
	if pages < 1 {
		return 1
	}
	return pages
}

func parsePositive(values url.Values, key string, def int) int {
	vs, ok := values[key]
	if !ok {
		return def
	}

	v, err := strconv.Atoi(strings.TrimSpace(first(vs)))
	if err != nil {
		return def
	}
	if v < 1 {
		return 1
	}
	return v
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}
