package sqlite

import (
	"context"
	"database/sql"

	"github.com/kotoed/denizen/internal/denizen/domain"
)

type profilesRepo struct {
	q querier
}

func (r *profilesRepo) GetProfileByDenizenID(ctx context.Context, denizenID string) (domain.Profile, error) {
	var (
		p                          domain.Profile
		firstName, lastName, group sql.NullString
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, denizen_id, first_name, last_name, group_id, power_mode, created_at, updated_at
		 FROM profiles WHERE denizen_id = ?`, denizenID,
	).Scan(&p.ID, &p.DenizenID, &firstName, &lastName, &group, &p.PowerMode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}

	p.FirstName = mapNullStringPtr(firstName)
	p.LastName = mapNullStringPtr(lastName)
	p.Group = mapNullStringPtr(group)
	return p, nil
}

// UpsertProfile keys on denizen_id; p.ID is only used when the row is new.
func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.Profile) error {
	ts := now()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (id, denizen_id, first_name, last_name, group_id, power_mode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (denizen_id) DO UPDATE SET
		     first_name = excluded.first_name,
		     last_name  = excluded.last_name,
		     group_id   = excluded.group_id,
		     power_mode = excluded.power_mode,
		     updated_at = excluded.updated_at`,
		p.ID, p.DenizenID,
		mapOptionalString(p.FirstName), mapOptionalString(p.LastName), mapOptionalString(p.Group),
		p.PowerMode, ts, ts,
	)
	return mapConstraint(err)
}
