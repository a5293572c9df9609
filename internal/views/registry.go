// Package views keeps the catalog of view variants that the practice UI can
// render. Each variant module registers its metadata once at startup and
// listing components query the catalog per category.
package views

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownCategory is returned when metadata names a category outside the
// fixed set.
var ErrUnknownCategory = errors.New("unknown view category")

type Category string

const (
	CategorySet      Category = "set"
	CategoryTimeline Category = "timeline"
	CategoryQuestion Category = "question"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategorySet, CategoryTimeline, CategoryQuestion}
}

func (c Category) Valid() bool {
	switch c {
	case CategorySet, CategoryTimeline, CategoryQuestion:
		return true
	}
	return false
}

// ParseCategory converts s to a Category, rejecting unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Metadata describes one view variant.
type Metadata struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Tags         []string `json:"tags"`
	Experimental bool     `json:"isExperimental"`
}

func (m Metadata) clone() Metadata {
	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)
	m.Tags = tags
	return m
}

// HasTag reports whether tag is among m's tags.
func (m Metadata) HasTag(tag string) bool {
	return slices.Contains(m.Tags, tag)
}

// Registry holds view metadata bucketed by category. Ids are unique within
// a category; registering an existing id replaces the earlier record.
type Registry struct {
	mu      sync.RWMutex
	buckets map[Category][]Metadata
}

func NewRegistry() *Registry {
	return &Registry{buckets: make(map[Category][]Metadata)}
}

// Register adds m to its category, replacing any record with the same id
// in place.
func (r *Registry) Register(m Metadata) error {
	if !m.Category.Valid() {
		return fmt.Errorf("registering view %d %q: %w: %q", m.ID, m.Name, ErrUnknownCategory, m.Category)
	}
	m = m.clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.buckets[m.Category]
	for i := range bucket {
		if bucket[i].ID == m.ID {
			bucket[i] = m
			return nil
		}
	}
	r.buckets[m.Category] = append(bucket, m)
	return nil
}

// ByCategory returns the category's records sorted by ascending id. The
// result is never nil and is safe to modify.
func (r *Registry) ByCategory(c Category) []Metadata {
	r.mu.RLock()
	bucket := r.buckets[c]
	out := make([]Metadata, 0, len(bucket))
	for _, m := range bucket {
		out = append(out, m.clone())
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Metadata) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ByID looks up a single record. A miss is reported through ok, not an
// error, since callers may query before every module has registered.
func (r *Registry) ByID(c Category, id int) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.buckets[c] {
		if m.ID == id {
			return m.clone(), true
		}
	}
	return Metadata{}, false
}

// Count returns the number of distinct ids registered under c.
func (r *Registry) Count(c Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buckets[c])
}

// Clear drops every record.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.buckets)
}

// Filter narrows a category listing.
type Filter struct {
	Tag              string
	HideExperimental bool
}

// Query returns ByCategory(c) narrowed by f.
func (r *Registry) Query(c Category, f Filter) []Metadata {
	all := r.ByCategory(c)
	out := all[:0]
	for _, m := range all {
		if f.HideExperimental && m.Experimental {
			continue
		}
		if f.Tag != "" && !m.HasTag(f.Tag) {
			continue
		}
		out = append(out, m)
	}
	return out
}
