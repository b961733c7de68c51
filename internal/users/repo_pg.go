package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, name, password_hash, education, field_of_study, skills, quiz_tags, profile_complete, quiz_taken, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES ($1, lower($2), $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = lower($1) LIMIT 1`, userColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES ($1, lower($2), $3, '', now(), now())
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, user.Name)
	return err
}

func (r *PGRepo) UpdateProfile(ctx context.Context, email string, changes ProfileChanges) error {
	if changes.empty() {
		return nil
	}

	sets := []string{"updated_at = now()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if changes.Name != nil {
		sets = append(sets, "name = "+arg(*changes.Name))
	}
	if changes.Education != nil {
		sets = append(sets, "education = "+arg(*changes.Education))
	}
	if changes.FieldOfStudy != nil {
		sets = append(sets, "field_of_study = "+arg(*changes.FieldOfStudy))
	}
	if changes.Skills != nil {
		sets = append(sets, "skills = "+arg(*changes.Skills))
	}
	if changes.QuizTags != nil {
		sets = append(sets, "quiz_tags = "+arg(*changes.QuizTags))
	}
	if changes.ProfileComplete != nil {
		sets = append(sets, "profile_complete = "+arg(*changes.ProfileComplete))
	}
	if changes.QuizTaken != nil {
		sets = append(sets, "quiz_taken = "+arg(*changes.QuizTaken))
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE email = lower(%s)`,
		strings.Join(sets, ", "), arg(email))
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Education,
		&user.FieldOfStudy,
		&user.Skills,
		&user.QuizTags,
		&user.ProfileComplete,
		&user.QuizTaken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}
