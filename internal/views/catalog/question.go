package catalog

import "github.com/satprep/practice/internal/views"

// QuestionViews registers the question-bank and question-grid layouts.
func QuestionViews() views.Module {
	return group{
		name:     "question-views",
		category: views.CategoryQuestion,
		variants: []variant{
			{id: 1, name: "Test Layout", description: "Digital SAT style layout with passage pane, question pane and timers.", tags: []string{"default", "timed"}},
			{id: 2, name: "Question Grid", description: "Numbered grid showing answered, flagged and skipped questions.", tags: []string{"matrix", "navigation"}},
			{id: 3, name: "Single Column", description: "Passage above the question for narrow screens.", tags: []string{"mobile"}},
			{id: 4, name: "Review Mode", description: "Answer explanations shown inline after submission.", tags: []string{"review"}},
			{id: 5, name: "Flashcard", description: "One question per card with flip-to-answer.", tags: []string{"cards"}},
			{id: 6, name: "Skill Matrix", description: "Questions grouped by skill and difficulty.", tags: []string{"matrix"}},
			{id: 7, name: "Focus Mode", description: "Distraction-free layout that hides the stopwatch.", tags: []string{"timed", "minimal"}},
			{id: 8, name: "Side-by-Side Compare", description: "Your answer next to the correct one with rationale.", tags: []string{"review"}},
			{id: 9, name: "Adaptive Preview", description: "Shows the next module's difficulty band as you answer.", tags: []string{"adaptive"}, experimental: true},
		},
	}
}
