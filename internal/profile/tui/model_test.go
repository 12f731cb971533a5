package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kotoed/denizen/internal/profile"
)

type stubService struct {
	mu      sync.Mutex
	record  profile.ProfileRecord
	readErr error

	updates []profile.ProfileRecord
	changes []profile.PasswordChangeRecord

	updateErr error
	changeErr error
}

func (s *stubService) ReadProfile(ctx context.Context, id string) (profile.ProfileRecord, error) {
	if s.readErr != nil {
		return profile.ProfileRecord{}, s.readErr
	}
	rec := s.record
	rec.ID = id
	return rec, nil
}

func (s *stubService) UpdateProfile(ctx context.Context, p profile.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, p)
	return s.updateErr
}

func (s *stubService) ChangePassword(ctx context.Context, p profile.PasswordChangeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, p)
	return s.changeErr
}

func silent() profile.ErrorReporter {
	return profile.ReporterFunc(func(context.Context, profile.ActionKind, error) {})
}

func loaded(t *testing.T, svc *stubService) Model {
	t.Helper()

	m := New(context.Background(), svc, "01J0000000000000000000000A", silent())
	require.Contains(t, m.View(), "Loading profile")

	next, _ := m.Update(m.loadProfile())
	m = next.(Model)
	require.True(t, m.Loaded())
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// run executes a submit command and feeds its result back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestLoadShowsProfile(t *testing.T) {
	first := "Alice"
	svc := &stubService{record: profile.ProfileRecord{Username: "alice", FirstName: &first}}

	m := loaded(t, svc)
	view := m.View()
	require.Contains(t, view, "alice")
	require.Contains(t, view, "Alice")
	require.Equal(t, 0, m.focus)
}

func TestLoadFailure(t *testing.T) {
	svc := &stubService{readErr: errors.New("connection refused")}
	m := New(context.Background(), svc, "01J0000000000000000000000A", silent())

	next, _ := m.Update(m.loadProfile())
	m = next.(Model)
	require.False(t, m.Loaded())
	require.Contains(t, m.View(), "connection refused")
}

func TestKeysIgnoredUntilLoaded(t *testing.T) {
	m := New(context.Background(), &stubService{}, "01J0000000000000000000000A", silent())

	m, cmd := press(m, tea.KeyCtrlS)
	require.Nil(t, cmd)
	require.False(t, m.Loaded())
}

func TestTabCyclesFocus(t *testing.T) {
	m := loaded(t, &stubService{record: profile.ProfileRecord{Username: "alice"}})

	for i := 1; i < len(m.inputs); i++ {
		m, _ = press(m, tea.KeyTab)
		require.Equal(t, i, m.focus)
		require.True(t, m.inputs[i].model.Focused())
		require.False(t, m.inputs[i-1].model.Focused())
	}

	m, _ = press(m, tea.KeyTab)
	require.Equal(t, 0, m.focus)

	m, _ = press(m, tea.KeyShiftTab)
	require.Equal(t, len(m.inputs)-1, m.focus)
}

func TestTypingUpdatesForm(t *testing.T) {
	m := loaded(t, &stubService{record: profile.ProfileRecord{Username: "alice"}})

	m = typeText(m, "not-an-email")
	snap := m.Form().Snapshot()
	require.Equal(t, "not-an-email", profile.Deref(snap.Profile.Email))
	require.Empty(t, snap.Messages(), "pending errors stay hidden until submit")

	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Alice")
	require.Equal(t, "Alice", profile.Deref(m.Form().Snapshot().Profile.FirstName))
}

func TestSaveBlockedByBadEmail(t *testing.T) {
	svc := &stubService{record: profile.ProfileRecord{Username: "alice"}}
	m := loaded(t, svc)

	m = typeText(m, "bad")
	m, cmd := press(m, tea.KeyCtrlS)
	m = run(t, m, cmd)

	require.Contains(t, m.View(), profile.BadEmail.Message())
	require.Empty(t, svc.updates)
}

func TestSaveSucceeds(t *testing.T) {
	svc := &stubService{record: profile.ProfileRecord{Username: "alice"}}
	m := loaded(t, svc)

	m = typeText(m, "alice@example.com")
	m, cmd := press(m, tea.KeyCtrlS)
	m = run(t, m, cmd)

	require.Len(t, svc.updates, 1)
	require.Equal(t, "alice@example.com", profile.Deref(svc.updates[0].Email))
	require.Contains(t, m.View(), "The profile updated successfully")
	require.False(t, m.Form().Snapshot().Disabled)
}

func TestSaveRemoteFailureIsShown(t *testing.T) {
	svc := &stubService{
		record:    profile.ProfileRecord{Username: "alice"},
		updateErr: errors.New("bad gateway"),
	}
	m := loaded(t, svc)

	m, cmd := press(m, tea.KeyCtrlS)
	m = run(t, m, cmd)

	view := m.View()
	require.Contains(t, view, "bad gateway")
	require.NotContains(t, view, "The profile updated successfully")
}

func TestPowerModeToggle(t *testing.T) {
	svc := &stubService{record: profile.ProfileRecord{Username: "alice"}}
	m := loaded(t, svc)

	m, _ = press(m, tea.KeyCtrlT)
	require.True(t, m.Form().Snapshot().Profile.PowerMode)

	m, cmd := press(m, tea.KeyCtrlS)
	run(t, m, cmd)
	require.Len(t, svc.updates, 1)
	require.True(t, svc.updates[0].PowerMode)
}

func focusPasswords(m Model) Model {
	for m.focus != firstPasswordInput {
		m, _ = press(m, tea.KeyTab)
	}
	return m
}

func TestChangePasswordMismatch(t *testing.T) {
	svc := &stubService{record: profile.ProfileRecord{Username: "alice"}}
	m := focusPasswords(loaded(t, svc))

	m = typeText(m, "old")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "new1")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "new2")

	m, cmd := press(m, tea.KeyCtrlP)
	m = run(t, m, cmd)

	require.Contains(t, m.View(), profile.PasswordsDontMatch.Message())
	require.Empty(t, svc.changes)
}

func TestChangePasswordIncorrectOld(t *testing.T) {
	svc := &stubService{
		record:    profile.ProfileRecord{Username: "alice"},
		changeErr: profile.ErrIncorrectOldPassword,
	}
	m := focusPasswords(loaded(t, svc))

	m = typeText(m, "wrong")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "secret")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "secret")

	m, cmd := press(m, tea.KeyCtrlP)
	m = run(t, m, cmd)

	require.Len(t, svc.changes, 1)
	require.Equal(t, "wrong", svc.changes[0].OldPassword)

	view := m.View()
	require.Contains(t, view, profile.IncorrectPassword.Message())
	require.NotContains(t, view, "Request failed")
	require.NotContains(t, view, "secret", "password inputs are masked")
}

func TestQuit(t *testing.T) {
	m := loaded(t, &stubService{record: profile.ProfileRecord{Username: "alice"}})

	m, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, m.View())
}
