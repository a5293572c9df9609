package catalog

import "github.com/satprep/practice/internal/views"

// SetViews registers the practice-set review layouts.
func SetViews() views.Module {
	return group{
		name:     "set-views",
		category: views.CategorySet,
		variants: []variant{
			{id: 1, name: "Classic Table", description: "Sortable table of practice sets with score and duration columns.", tags: []string{"table", "default"}},
			{id: 2, name: "Compact Table", description: "Dense table with one row per set and inline accuracy bars.", tags: []string{"table", "compact"}},
			{id: 3, name: "Card Grid", description: "Practice sets as cards grouped by subject.", tags: []string{"cards"}},
			{id: 4, name: "Kanban Board", description: "Sets arranged in to-review, in-progress and mastered columns.", tags: []string{"kanban", "drag-drop"}},
			{id: 5, name: "Subject Swimlanes", description: "One horizontal lane per subject with sets ordered by date.", tags: []string{"kanban"}},
			{id: 6, name: "Accuracy Heatmap", description: "Calendar heatmap colored by daily accuracy.", tags: []string{"chart", "calendar"}},
			{id: 7, name: "Score Trend", description: "Line chart of set scores with a table drill-down.", tags: []string{"chart"}},
			{id: 8, name: "Split Detail", description: "Set list on the left, selected set breakdown on the right.", tags: []string{"table", "detail"}},
			{id: 9, name: "Difficulty Matrix", description: "Sets bucketed by difficulty and subject in a grid.", tags: []string{"matrix"}},
			{id: 10, name: "Minimal List", description: "Plain list with date, subject and score only.", tags: []string{"compact"}},
			{id: 11, name: "Radial Progress", description: "Per-subject progress rings above the set table.", tags: []string{"chart"}, experimental: true},
			{id: 12, name: "Spreadsheet Mode", description: "Editable grid with keyboard navigation.", tags: []string{"table", "keyboard"}, experimental: true},
		},
	}
}
