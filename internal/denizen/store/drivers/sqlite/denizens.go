package sqlite

import (
	"context"
	"database/sql"

	"github.com/kotoed/denizen/internal/denizen/domain"
)

type denizensRepo struct {
	q querier
}

const denizenColumns = `id, username, email, password_hash, created_at, updated_at`

func scanDenizen(row *sql.Row) (domain.Denizen, error) {
	var (
		d     domain.Denizen
		email sql.NullString
	)
	if err := row.Scan(&d.ID, &d.Username, &email, &d.PasswordHash, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.Denizen{}, mapNotFound(err)
	}
	d.Email = mapNullStringPtr(email)
	return d, nil
}

func (r *denizensRepo) GetDenizenByID(ctx context.Context, id string) (domain.Denizen, error) {
	return scanDenizen(r.q.QueryRowContext(ctx,
		`SELECT `+denizenColumns+` FROM denizens WHERE id = ?`, id))
}

func (r *denizensRepo) GetDenizenByUsername(ctx context.Context, username string) (domain.Denizen, error) {
	return scanDenizen(r.q.QueryRowContext(ctx,
		`SELECT `+denizenColumns+` FROM denizens WHERE username = ?`, username))
}

func (r *denizensRepo) CreateDenizen(ctx context.Context, d domain.Denizen) error {
	ts := now()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO denizens (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Username, mapOptionalString(d.Email), d.PasswordHash, ts, ts,
	)
	return mapConstraint(err)
}

func (r *denizensRepo) UpdateEmail(ctx context.Context, id string, email *string) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE denizens SET email = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(email), now(), id,
	))
}

func (r *denizensRepo) UpdatePasswordHash(ctx context.Context, id string, newHash string) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE denizens SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, now(), id,
	))
}
