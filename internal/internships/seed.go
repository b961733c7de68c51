package internships

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// defaultSeed backs the listing when no seed file or database rows exist.
var defaultSeed = []Internship{
	{
		ID:          "intern-001",
		Title:       "Software Engineering Intern",
		Company:     "Brightline Labs",
		Location:    "Remote",
		Stipend:     "$2,400/mo",
		Description: "Work with the platform team on internal tooling in Go and React.",
		MatchScore:  92,
		FitTags:     []string{"fast-paced", "team-oriented", "startup-culture"},
	},
	{
		ID:          "intern-002",
		Title:       "Data Analyst Intern",
		Company:     "Northgate Insights",
		Location:    "Chicago, IL",
		Stipend:     "$2,100/mo",
		Description: "Build dashboards and run analyses on customer engagement data.",
		MatchScore:  87,
		FitTags:     []string{"analytical", "structured", "corporate-culture"},
	},
	{
		ID:          "intern-003",
		Title:       "Product Design Intern",
		Company:     "Mosaic Studio",
		Location:    "Remote",
		Stipend:     "$1,800/mo",
		Description: "Prototype onboarding experiences alongside a senior design pair.",
		MatchScore:  81,
		FitTags:     []string{"creative", "impact-driven"},
	},
	{
		ID:          "intern-004",
		Title:       "Machine Learning Intern",
		Company:     "Veldt AI",
		Location:    "Austin, TX",
		Stipend:     "$3,000/mo",
		Description: "Evaluate ranking models and ship improvements to the match pipeline.",
		MatchScore:  78,
		FitTags:     []string{"analytical", "skill-focused", "independent"},
	},
	{
		ID:          "intern-005",
		Title:       "Marketing Operations Intern",
		Company:     "Harbor & Main",
		Location:    "New York, NY",
		Stipend:     "$1,600/mo",
		Description: "Own campaign reporting and help automate the content calendar.",
		MatchScore:  70,
		FitTags:     []string{"structured", "corporate-culture", "team-oriented"},
	},
}

// Seed loads postings into the repo: from a JSON file when path is set,
// otherwise from the built-in fixture. Existing rows are overwritten by id.
func Seed(ctx context.Context, repo Repo, path string) error {
	postings := defaultSeed
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read internships seed: %w", err)
		}
		if err := json.Unmarshal(data, &postings); err != nil {
			return fmt.Errorf("parse internships seed: %w", err)
		}
	}
	for _, p := range postings {
		if err := repo.Put(ctx, p); err != nil {
			return fmt.Errorf("seed internship %s: %w", p.ID, err)
		}
	}
	return nil
}
