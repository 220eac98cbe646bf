// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"strconv"
	"strings"
)

// UnknownTotal is the total of a response whose total row count is not known.
const UnknownTotal = -1

// Pagination holds information about the source rows.
// A Limit <= 0 disables the pagination. TotalPages 0 means unknown.
type Pagination struct {
	Limit       int `json:"limit"`
	Prev        int `json:"prev"`
	Next        int `json:"next"`
	CurrentPage int `json:"currentPage"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
}

// EffectivePageSize returns the limit if positive, otherwise the fallback.
func EffectivePageSize(limit int, fallback int) int {
	if limit > 0 {
		return limit
	}
	return fallback
}

// NewPagination calculates the pagination of a page.
func NewPagination(total int, limit int, page int) Pagination {
	if page < 1 {
		page = 1
	}
	p := Pagination{Total: total, Limit: limit, CurrentPage: page}
	p.TotalPages = p.totalPages()
	p.Next = p.next()
	p.Prev = p.prev()
	return p
}

// CanGoTo reports whether the page exists.
// With an unknown total every page >= 1 may be requested.
func (p Pagination) CanGoTo(page int) bool {
	if page < 1 {
		return false
	}
	return p.TotalPages == 0 || page <= p.TotalPages
}

// PageInput parses a manual page input.
// Invalid or out of range input returns the current page.
func (p Pagination) PageInput(input string) int {
	page, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || !p.CanGoTo(page) {
		return p.CurrentPage
	}
	return page
}

// next checks if there is a next page.
// If its already the last page, 0 will return.
func (p Pagination) next() int {
	if p.TotalPages == 0 || p.CurrentPage < p.TotalPages {
		return p.CurrentPage + 1
	}
	return 0
}

// prev checks if there is a previous page.
// If its the first one, 0 will return.
func (p Pagination) prev() int {
	if p.TotalPages > 0 && p.CurrentPage > p.TotalPages {
		return p.TotalPages
	}
	if p.CurrentPage > 1 {
		return p.CurrentPage - 1
	}
	return 0
}

// offset returns the current offset.
func (p Pagination) offset() int {
	if p.CurrentPage <= 1 || p.Limit <= 0 {
		return 0
	}
	return (p.CurrentPage - 1) * p.Limit
}

// totalPages returns the total number of pages.
// If there were no rows found or the pagination is disabled, 1 will return.
func (p Pagination) totalPages() int {
	if p.Total < 0 {
		return 0
	}
	if p.Total == 0 || p.Limit <= 0 {
		return 1
	}
	return int(math.Ceil(float64(p.Total) / float64(p.Limit)))
}

// Slice returns the rows of the page. A limit <= 0 returns all rows.
func Slice(rows []Row, page int, limit int) []Row {
	if limit <= 0 {
		return copyRows(rows)
	}
	start := NewPagination(len(rows), limit, page).offset()
	if start >= len(rows) {
		return []Row{}
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return copyRows(rows[start:end])
}
