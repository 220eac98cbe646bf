// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package grid

import (
	"context"
	"sync"
)

// LocalSource serves in memory rows.
// Filter, sort and pagination are applied by the source itself.
type LocalSource struct {
	mutex      sync.RWMutex
	rows       []Row
	comparator *Comparator
	// DeletedField marks soft deleted rows, which are only returned with Params.ShowDeleted.
	// Empty disables the check.
	DeletedField string
}

// NewLocalSource creates a source of the rows which sorts with the collation of the locale.
func NewLocalSource(rows []Row, locale string) *LocalSource {
	return &LocalSource{rows: copyRows(rows), comparator: NewComparator(locale)}
}

// SetRows replaces the rows.
func (l *LocalSource) SetRows(rows []Row) {
	l.mutex.Lock()
	l.rows = copyRows(rows)
	l.mutex.Unlock()
}

// Fetch filters, sorts and slices the rows.
func (l *LocalSource) Fetch(ctx context.Context, p Params) (Response, error) {
	l.mutex.RLock()
	rows := l.rows
	l.mutex.RUnlock()

	if l.DeletedField != "" && !p.ShowDeleted {
		active := make([]Row, 0, len(rows))
		for _, r := range rows {
			if !isDeleted(r.Value(l.DeletedField)) {
				active = append(active, r)
			}
		}
		rows = active
	}

	if p.Search != nil {
		f := p.Search
		if p.SearchLogic != "" {
			f = &AdvancedFilter{Logic: p.SearchLogic, Conditions: f.Conditions}
		}
		rows = f.Apply(rows)
	}
	if p.Sort != nil {
		rows = l.comparator.SortRows(rows, *p.Sort)
	}

	return Response{Status: StatusSuccess, Total: len(rows), Records: Slice(rows, p.Page, p.Limit)}, nil
}

// isDeleted treats true and any non empty value, like a deletion date, as deleted.
func isDeleted(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return !isEmptyValue(v)
}
