// Package pagination implements opaque keyset cursors.
//
// Cursors are keyed by a stable ordering field (insertion-order ID, with an
// optional creation-time major key), never by page offset, so pages already
// issued stay valid and non-duplicating under concurrent inserts.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Cursor points just past the last row of a page.
// CreatedAt is set for (created_at, id) descending orderings and nil for
// plain ascending-ID orderings.
type Cursor struct {
	CreatedAt *time.Time `json:"t,omitempty"`
	ID        uint       `json:"id"`
}

// Encode serializes the cursor into an opaque URL-safe token.
func Encode(c Cursor) string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a token produced by Encode. An empty token yields the zero
// cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, err
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, err
	}
	return c, nil
}

// IsZero reports whether the cursor marks the first page.
func (c Cursor) IsZero() bool {
	return c.ID == 0 && c.CreatedAt == nil
}

// Page is one slice of an ordered result set. Next is nil on the last page.
type Page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
}

// NewPage assembles a page from up to limit+1 fetched items. When the extra
// item is present it is dropped and a next cursor is derived from the last
// returned item.
func NewPage[T any](items []T, limit int, cursorOf func(last T) Cursor) Page[T] {
	page := Page[T]{Results: items}
	if page.Results == nil {
		page.Results = []T{}
	}
	if limit > 0 && len(items) > limit {
		page.Results = items[:limit]
		token := Encode(cursorOf(page.Results[limit-1]))
		page.Next = &token
	}
	return page
}

// Map converts a page's items, keeping the next cursor.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	out := Page[U]{Results: make([]U, 0, len(p.Results)), Next: p.Next}
	for _, item := range p.Results {
		out.Results = append(out.Results, f(item))
	}
	return out
}
