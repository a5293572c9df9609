// Package catalog holds the built-in view variants shipped with the
// practice UI.
package catalog

import "github.com/satprep/practice/internal/views"

type variant struct {
	id           int
	name         string
	description  string
	tags         []string
	experimental bool
}

// group is a views.Module backed by a static variant table.
type group struct {
	name     string
	category views.Category
	variants []variant
}

func (g group) Name() string { return g.name }

func (g group) Register(r *views.Registry) error {
	for _, v := range g.variants {
		err := r.Register(views.Metadata{
			ID:           v.id,
			Name:         v.name,
			Description:  v.description,
			Category:     g.category,
			Tags:         v.tags,
			Experimental: v.experimental,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Default returns the set, timeline and question variant modules.
func Default() []views.Module {
	return []views.Module{SetViews(), TimelineViews(), QuestionViews()}
}
