package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kotoed/denizen/internal/denizen/domain"
)

type oauthProfilesRepo struct {
	q querier
}

func (r *oauthProfilesRepo) CreateProvider(ctx context.Context, p domain.OAuthProvider) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO oauth_providers (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, now(),
	)
	return mapConstraint(err)
}

func (r *oauthProfilesRepo) GetProviderByName(ctx context.Context, name string) (domain.OAuthProvider, error) {
	var p domain.OAuthProvider
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM oauth_providers WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return domain.OAuthProvider{}, mapNotFound(err)
	}
	return p, nil
}

func (r *oauthProfilesRepo) LinkProfile(ctx context.Context, p domain.OAuthProfile) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO oauth_profiles (id, denizen_id, provider_id, oauth_user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.DenizenID, p.ProviderID, p.OAuthUserID, now(),
	)
	return mapConstraint(err)
}

func (r *oauthProfilesRepo) ListLinksByDenizen(ctx context.Context, denizenID string) ([]domain.OAuthLink, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT p.name, o.oauth_user_id
		 FROM oauth_profiles o
		 JOIN oauth_providers p ON p.id = o.provider_id
		 WHERE o.denizen_id = ?
		 ORDER BY p.name`, denizenID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.OAuthLink
	for rows.Next() {
		var (
			link   domain.OAuthLink
			userID sql.NullString
		)
		if err := rows.Scan(&link.Provider, &userID); err != nil {
			return nil, fmt.Errorf("scan oauth link: %w", err)
		}
		link.UserID = mapNullStringPtr(userID)
		links = append(links, link)
	}
	return links, rows.Err()
}
