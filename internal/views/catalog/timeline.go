package catalog

import "github.com/satprep/practice/internal/views"

// TimelineViews registers the study-history timeline layouts.
func TimelineViews() views.Module {
	return group{
		name:     "timeline-views",
		category: views.CategoryTimeline,
		variants: []variant{
			{id: 1, name: "Vertical Timeline", description: "Practice sessions stacked by date with score badges.", tags: []string{"default"}},
			{id: 2, name: "Horizontal Scroller", description: "Sessions on a horizontal axis with week markers.", tags: []string{"scroll"}},
			{id: 3, name: "Milestone Track", description: "Timeline that highlights score milestones and streaks.", tags: []string{"milestones"}},
			{id: 4, name: "Calendar Agenda", description: "Month calendar with sessions listed per day.", tags: []string{"calendar"}},
			{id: 5, name: "Grouped by Week", description: "Collapsible week groups with weekly totals.", tags: []string{"compact"}},
			{id: 6, name: "Dual Track", description: "Math and reading sessions on parallel tracks.", tags: []string{"subjects"}},
			{id: 7, name: "Activity Feed", description: "Social-style feed of completed sets and reviews.", tags: []string{"feed"}},
			{id: 8, name: "Gantt Plan", description: "Planned versus completed study blocks.", tags: []string{"chart", "planning"}, experimental: true},
		},
	}
}
