package internships

import (
	"context"
	"database/sql"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) List(ctx context.Context) ([]Internship, error) {
	const query = `
SELECT id, title, company, location, stipend, description, match_score, fit_tags, created_at
FROM internships
ORDER BY match_score DESC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Internship
	for rows.Next() {
		var p Internship
		var tags string
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Company,
			&p.Location,
			&p.Stipend,
			&p.Description,
			&p.MatchScore,
			&tags,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.FitTags = splitTags(tags)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Put(ctx context.Context, posting Internship) error {
	const query = `
INSERT INTO internships (id, title, company, location, stipend, description, match_score, fit_tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  company = EXCLUDED.company,
  location = EXCLUDED.location,
  stipend = EXCLUDED.stipend,
  description = EXCLUDED.description,
  match_score = EXCLUDED.match_score,
  fit_tags = EXCLUDED.fit_tags`
	_, err := r.DB.ExecContext(ctx, query,
		posting.ID,
		posting.Title,
		posting.Company,
		posting.Location,
		posting.Stipend,
		posting.Description,
		posting.MatchScore,
		strings.Join(posting.FitTags, ","),
	)
	return err
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
