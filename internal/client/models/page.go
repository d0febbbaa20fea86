package models

import (
	"net/url"
	"strconv"
)

// PageRequest asks for one page of a list. The zero value asks for all items.
type PageRequest struct {
	Page int
	Size int
}

// Apply adds page and size query parameters when pagination is requested.
func (p PageRequest) Apply(q url.Values) {
	if p.Size <= 0 {
		return
	}
	page := p.Page
	if page < 0 {
		page = 0
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(p.Size))
}
