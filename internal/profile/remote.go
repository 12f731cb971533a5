package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kotoed/denizen/pkg/profilesdk"
	"github.com/kotoed/denizen/pkg/slogx"
)

// ErrIncorrectOldPassword is the one remote failure mapped onto a form flag.
var ErrIncorrectOldPassword = errors.New("incorrect old password")

// RemoteError wraps any other failure of the remote profile service.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("remote %s: %v", e.Op, e.Err) }
func (e *RemoteError) Unwrap() error { return e.Err }

// Service is the remote profile service.
type Service interface {
	ReadProfile(ctx context.Context, id string) (ProfileRecord, error)
	UpdateProfile(ctx context.Context, p ProfileRecord) error
	ChangePassword(ctx context.Context, p PasswordChangeRecord) error
}

// ErrorReporter receives remote failures that no form flag describes.
type ErrorReporter interface {
	Report(ctx context.Context, kind ActionKind, err error)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(ctx context.Context, kind ActionKind, err error)

func (f ReporterFunc) Report(ctx context.Context, kind ActionKind, err error) { f(ctx, kind, err) }

// LogReporter logs failures. A nil Logger uses the context logger.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(ctx context.Context, kind ActionKind, err error) {
	l := r.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.Error("profile submission failed", slog.String("action", kind.String()), slog.Any("err", err))
}

// SDKService implements Service over the denizen HTTP API.
type SDKService struct {
	Client *profilesdk.Client
}

func NewSDKService(baseURL string) *SDKService {
	return &SDKService{Client: profilesdk.NewClient(baseURL)}
}

func (s *SDKService) ReadProfile(ctx context.Context, id string) (ProfileRecord, error) {
	info, err := s.Client.ReadProfile(ctx, id)
	if err != nil {
		return ProfileRecord{}, &RemoteError{Op: "read profile", Err: err}
	}

	rec := ProfileRecord{
		ID:        info.ID,
		Username:  info.Username,
		Email:     info.Email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Group:     info.Group,
		PowerMode: info.PowerMode,
	}
	for _, l := range info.OAuth {
		rec.OAuth = append(rec.OAuth, OAuthLink{Provider: l.Provider, UserID: l.UserID})
	}
	return rec, nil
}

func (s *SDKService) UpdateProfile(ctx context.Context, p ProfileRecord) error {
	power := p.PowerMode
	err := s.Client.UpdateProfile(ctx, p.ID, profilesdk.ProfileUpdateRequest{
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Group:     p.Group,
		PowerMode: &power,
	})
	if err != nil {
		return &RemoteError{Op: "update profile", Err: err}
	}
	return nil
}

func (s *SDKService) ChangePassword(ctx context.Context, p PasswordChangeRecord) error {
	err := s.Client.ChangePassword(ctx, p.ID, profilesdk.PasswordChangeRequest{
		OldPassword: p.OldPassword,
		NewPassword: p.NewPassword,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, profilesdk.ErrIncorrectOldPassword):
		return ErrIncorrectOldPassword
	default:
		return &RemoteError{Op: "change password", Err: err}
	}
}

// Load fetches the profile and builds a controller for it.
func Load(ctx context.Context, svc Service, id string, opts ...Option) (*Controller, error) {
	rec, err := svc.ReadProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewController(rec, opts...), nil
}
