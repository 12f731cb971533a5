package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newForm(opts ...Option) *Controller {
	email := "alice@example.com"
	return NewController(ProfileRecord{ID: "01J0000000000000000000000A", Username: "alice", Email: &email}, opts...)
}

func TestHasErrorsReadsOnlyCommittedSet(t *testing.T) {
	c := newForm()

	c.SetEmail("not an email")
	require.False(t, c.HasErrors(), "shadow edits must not be visible before a commit")

	c.CommitErrors()
	require.True(t, c.HasErrors())
	require.True(t, c.Snapshot().Errors.Has(BadEmail))

	c.SetEmail("alice@example.org")
	require.True(t, c.HasErrors(), "fixing the field does not publish until the next commit")

	c.CommitErrors()
	require.False(t, c.HasErrors())
}

func TestEmailValidation(t *testing.T) {
	cases := []struct {
		email string
		bad   bool
	}{
		{"alice@example.com", false},
		{"a.b+tag@sub.example.co", false},
		{"local@localhost", false},
		{"", false},
		{"alice", true},
		{"alice@", true},
		{"@example.com", true},
		{"alice@exa mple.com", true},
		{"alice@-example.com", true},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			c := newForm()
			c.SetEmail(tc.email)
			c.CommitErrors()
			require.Equal(t, tc.bad, c.Snapshot().Errors.Has(BadEmail))
			require.Equal(t, tc.email, Deref(c.Snapshot().Profile.Email))
		})
	}
}

func TestMismatchedPasswords(t *testing.T) {
	c := newForm()
	c.SetPasswordField(FieldOldPassword, "old")
	c.SetPasswordField(FieldNewPassword, "a")
	c.SetPasswordField(FieldNewPasswordConfirm, "b")
	c.CommitErrors()

	errs := c.Snapshot().Errors
	require.True(t, errs.Has(PasswordsDontMatch))
	require.False(t, errs.Has(EmptyPassword))
}

func TestEmptyPasswords(t *testing.T) {
	c := newForm()
	c.SetPasswordField(FieldOldPassword, "")
	c.SetPasswordField(FieldNewPassword, "")
	c.SetPasswordField(FieldNewPasswordConfirm, "")
	c.CommitErrors()

	errs := c.Snapshot().Errors
	require.True(t, errs.Has(EmptyPassword))
	require.False(t, errs.Has(PasswordsDontMatch))
}

func TestEmptyAndMismatchTogether(t *testing.T) {
	c := newForm()
	c.SetPasswordField(FieldNewPassword, "a")
	c.CommitErrors()

	errs := c.Snapshot().Errors
	require.True(t, errs.Has(EmptyPassword))
	require.True(t, errs.Has(PasswordsDontMatch))
	require.Equal(t, []string{"Passwords don't match", "One of your password fields is empty"}, c.Snapshot().Messages())
}

func TestCommitIsIdempotent(t *testing.T) {
	c := newForm()
	c.SetEmail("broken@")
	c.SetPasswordField(FieldNewPassword, "x")

	c.CommitErrors()
	first := c.Snapshot().Errors
	c.CommitErrors()
	second := c.Snapshot().Errors

	require.Equal(t, first, second)
	require.True(t, second.Any())

	clean := newForm()
	clean.CommitErrors()
	clean.CommitErrors()
	require.False(t, clean.HasErrors())
}

func TestEditingOldPasswordClearsIncorrectPassword(t *testing.T) {
	c := newForm()
	c.update(func() { c.shadow[IncorrectPassword] = true })
	c.CommitErrors()
	require.True(t, c.HasErrors())

	c.SetPasswordField(FieldNewPassword, "n")
	c.CommitErrors()
	require.True(t, c.Snapshot().Errors.Has(IncorrectPassword))

	c.SetPasswordField(FieldOldPassword, "other")
	c.CommitErrors()
	require.False(t, c.Snapshot().Errors.Has(IncorrectPassword))
}

func TestProfileFieldsAndSuccessReset(t *testing.T) {
	c := newForm()
	setSuccess := func() { c.update(func() { c.success = true }) }

	edits := []struct {
		name string
		edit func()
	}{
		{"first name", func() { c.SetProfileField(FieldFirstName, "Alice") }},
		{"last name", func() { c.SetProfileField(FieldLastName, "Liddell") }},
		{"group", func() { c.SetProfileField(FieldGroup, "13531") }},
		{"email via field", func() { c.SetProfileField(FieldEmail, "alice@wonder.land") }},
		{"power mode", func() { c.SetPowerMode(true) }},
		{"old password", func() { c.SetPasswordField(FieldOldPassword, "o") }},
		{"new password", func() { c.SetPasswordField(FieldNewPassword, "n") }},
		{"confirmation", func() { c.SetPasswordField(FieldNewPasswordConfirm, "n") }},
	}
	for _, e := range edits {
		t.Run(e.name, func(t *testing.T) {
			setSuccess()
			require.True(t, c.Snapshot().Success)
			e.edit()
			require.False(t, c.Snapshot().Success)
		})
	}

	s := c.Snapshot()
	require.Equal(t, "Alice", Deref(s.Profile.FirstName))
	require.Equal(t, "Liddell", Deref(s.Profile.LastName))
	require.Equal(t, "13531", Deref(s.Profile.Group))
	require.Equal(t, "alice@wonder.land", Deref(s.Profile.Email))
	require.True(t, s.Profile.PowerMode)
	require.Equal(t, PasswordChangeRecord{ID: s.Profile.ID, OldPassword: "o", NewPassword: "n", NewPasswordConfirm: "n"}, s.Password)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newForm()
	s := c.Snapshot()
	*s.Profile.Email = "mutated@example.com"
	require.Equal(t, "alice@example.com", Deref(c.Snapshot().Profile.Email))
}

func TestOnChangeSeesAppliedState(t *testing.T) {
	var seen []Snapshot
	c := newForm(WithOnChange(func(s Snapshot) { seen = append(seen, s) }))

	c.SetProfileField(FieldFirstName, "Alice")
	c.SetEmail("bad")
	c.CommitErrors()

	require.Len(t, seen, 3)
	require.Equal(t, "Alice", Deref(seen[0].Profile.FirstName))
	require.False(t, seen[1].Errors.Any(), "email edit only touches the shadow buffer")
	require.True(t, seen[2].Errors.Has(BadEmail))
}

func TestFlagNames(t *testing.T) {
	require.Equal(t, "badEmail", BadEmail.String())
	require.Equal(t, "Your old password is incorrect", IncorrectPassword.Message())
	require.Equal(t, "unknown", Flag(42).String())
	require.Empty(t, Flag(-1).Message())
}
