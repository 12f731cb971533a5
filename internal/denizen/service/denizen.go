package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kotoed/denizen/internal/denizen/domain"
	"github.com/kotoed/denizen/internal/denizen/store"
	"github.com/kotoed/denizen/pkg/cryptox"
	"github.com/kotoed/denizen/pkg/expect"
	"github.com/kotoed/denizen/pkg/idx"
	"github.com/kotoed/denizen/pkg/profilesdk"
	"github.com/kotoed/denizen/pkg/slogx"
)

var (
	ErrInvalidRequest    = errors.New("invalid_request")
	ErrDenizenNotFound   = errors.New("denizen not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrIncorrectPassword = errors.New("incorrect_password")
)

type DenizenService struct {
	Store store.Store
}

// invalid wraps a failed expectation so callers can match ErrInvalidRequest
// and still read the expectation message.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

func mapDenizenErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrDenizenNotFound
	}
	return err
}

func nonEmpty(s string) bool { return s != "" }

func validEmail(email *string) bool {
	return email == nil || profilesdk.ValidEmail(*email)
}

// normaliseEmail treats an empty email as "no email".
func normaliseEmail(email *string) *string {
	if email == nil || *email == "" {
		return nil
	}
	return email
}

// Create registers a denizen and returns the new id.
func (s *DenizenService) Create(ctx context.Context, req domain.CreateDenizen) (string, error) {
	l := slogx.FromContext(ctx)

	username, err := expect.That(strings.TrimSpace(req.Username), nonEmpty, "username is required")
	if err != nil {
		return "", invalid(err)
	}
	if err := expect.Expect(req.Password != "", "password is required"); err != nil {
		return "", invalid(err)
	}
	email, err := expect.That(req.Email, validEmail, "email is malformed")
	if err != nil {
		return "", invalid(err)
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	d := domain.Denizen{
		ID:           idx.New().String(),
		Username:     username,
		Email:        normaliseEmail(email),
		PasswordHash: hash,
	}
	if err := s.Store.Denizens().CreateDenizen(ctx, d); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Warn("username already taken", slog.String("username", d.Username))
			return "", ErrUsernameTaken
		}
		return "", err
	}

	l.Info("denizen created", slog.String("denizen_id", d.ID), slog.String("username", d.Username))
	return d.ID, nil
}

// Read fetches the account record.
func (s *DenizenService) Read(ctx context.Context, id string) (domain.Denizen, error) {
	d, err := s.Store.Denizens().GetDenizenByID(ctx, id)
	if err != nil {
		return domain.Denizen{}, mapDenizenErr(err)
	}
	return d, nil
}

// ReadProfile joins the denizen with its profile row (if any) and OAuth links.
func (s *DenizenService) ReadProfile(ctx context.Context, id string) (domain.ProfileInfo, error) {
	d, err := s.Store.Denizens().GetDenizenByID(ctx, id)
	if err != nil {
		return domain.ProfileInfo{}, mapDenizenErr(err)
	}

	info := domain.ProfileInfo{
		ID:       d.ID,
		Username: d.Username,
		Email:    d.Email,
	}

	p, err := s.Store.Profiles().GetProfileByDenizenID(ctx, id)
	switch {
	case err == nil:
		info.FirstName = p.FirstName
		info.LastName = p.LastName
		info.Group = p.Group
		info.PowerMode = p.PowerMode
	case errors.Is(err, store.ErrNotFound):
	default:
		return domain.ProfileInfo{}, err
	}

	info.OAuth, err = s.Store.OAuthProfiles().ListLinksByDenizen(ctx, id)
	if err != nil {
		return domain.ProfileInfo{}, err
	}
	return info, nil
}

// UpdateProfile applies the non-nil fields of upd in one transaction: the
// email lives on the denizen row, everything else on the profile row.
func (s *DenizenService) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) error {
	l := slogx.FromContext(ctx)

	if err := expect.Expect(validEmail(upd.Email), "email is malformed"); err != nil {
		return invalid(err)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Denizens().GetDenizenByID(ctx, id); err != nil {
			return mapDenizenErr(err)
		}

		if upd.Email != nil {
			if err := tx.Denizens().UpdateEmail(ctx, id, normaliseEmail(upd.Email)); err != nil {
				return mapDenizenErr(err)
			}
		}

		if upd.FirstName == nil && upd.LastName == nil && upd.Group == nil && upd.PowerMode == nil {
			return nil
		}

		p, err := tx.Profiles().GetProfileByDenizenID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			p = domain.Profile{ID: idx.New().String(), DenizenID: id}
		} else if err != nil {
			return err
		}

		if upd.FirstName != nil {
			p.FirstName = upd.FirstName
		}
		if upd.LastName != nil {
			p.LastName = upd.LastName
		}
		if upd.Group != nil {
			p.Group = upd.Group
		}
		if upd.PowerMode != nil {
			p.PowerMode = *upd.PowerMode
		}
		return tx.Profiles().UpsertProfile(ctx, p)
	})
	if err != nil {
		return err
	}

	l.Info("profile updated", slog.String("denizen_id", id))
	return nil
}

// UpdatePassword replaces the password after checking the old one.
func (s *DenizenService) UpdatePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	if err := expect.Expect(newPassword != "", "new password is required"); err != nil {
		return invalid(err)
	}

	d, err := s.Store.Denizens().GetDenizenByID(ctx, id)
	if err != nil {
		return mapDenizenErr(err)
	}

	if err := cryptox.VerifyPassword(oldPassword, d.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Warn("password change rejected", slog.String("denizen_id", id))
			return ErrIncorrectPassword
		}
		return fmt.Errorf("verify password: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Denizens().UpdatePasswordHash(ctx, id, hash); err != nil {
		return mapDenizenErr(err)
	}

	l.Info("password changed", slog.String("denizen_id", id))
	return nil
}
