package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	httpapi "github.com/kotoed/denizen/internal/denizen/http"
	"github.com/kotoed/denizen/internal/denizen/service"
	"github.com/kotoed/denizen/internal/denizen/store/drivers/sqlite"
	"github.com/kotoed/denizen/pkg/cryptox"
	"github.com/kotoed/denizen/pkg/httpx"
	"github.com/kotoed/denizen/pkg/idx"
	"github.com/kotoed/denizen/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "profilectl")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	router := httpapi.NewRouter("test", st, httpx.NewMetrics("profilectl_test"), slogx.Discard())
	router.DenizenService = &service.DenizenService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// execute runs profilectl with args against url, feeding stdin.
func execute(t *testing.T, url, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--url", url}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func createAlice(t *testing.T, url string) string {
	t.Helper()

	out, err := execute(t, url, "old-secret\nold-secret\n", "create", "alice", "--email", "alice@example.com")
	require.NoError(t, err)

	id := strings.TrimSpace(out)
	require.True(t, idx.Valid(id), "got %q", id)
	return id
}

func TestCreateAndShow(t *testing.T) {
	url := newServer(t)
	id := createAlice(t, url)

	out, err := execute(t, url, "", "show", id)
	require.NoError(t, err)
	require.Contains(t, out, "alice")
	require.Contains(t, out, "alice@example.com")
	require.Contains(t, out, "false")
}

func TestCreateRejectsMismatchedPasswords(t *testing.T) {
	url := newServer(t)

	_, err := execute(t, url, "one\ntwo\n", "create", "bob")
	require.ErrorContains(t, err, "passwords don't match")
}

func TestCreateRejectsBadEmail(t *testing.T) {
	url := newServer(t)

	_, err := execute(t, url, "pw\npw\n", "create", "bob", "--email", "nope")
	require.ErrorContains(t, err, "invalid email")
}

func TestCreateDuplicateUsername(t *testing.T) {
	url := newServer(t)
	createAlice(t, url)

	_, err := execute(t, url, "pw\npw\n", "create", "alice")
	require.ErrorContains(t, err, "already_exists")
}

func TestSetUpdatesOnlyGivenFields(t *testing.T) {
	url := newServer(t)
	id := createAlice(t, url)

	out, err := execute(t, url, "", "set", id, "--first-name", "Alice", "--power-mode")
	require.NoError(t, err)
	require.Contains(t, out, "The profile updated successfully")

	out, err = execute(t, url, "", "show", id)
	require.NoError(t, err)
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "alice@example.com")
	require.Contains(t, out, "true")
}

func TestSetBlockedByBadEmail(t *testing.T) {
	url := newServer(t)
	id := createAlice(t, url)

	out, err := execute(t, url, "", "set", id, "--email", "not-an-email")
	require.ErrorIs(t, err, errBlocked)
	require.Contains(t, out, "Incorrect email")

	out, err = execute(t, url, "", "show", id)
	require.NoError(t, err)
	require.Contains(t, out, "alice@example.com")
}

func TestShowUnknownDenizen(t *testing.T) {
	url := newServer(t)

	_, err := execute(t, url, "", "show", idx.New().String())
	require.ErrorContains(t, err, "not_found")
}

func TestPasswd(t *testing.T) {
	url := newServer(t)
	id := createAlice(t, url)

	out, err := execute(t, url, "old-secret\nnew-secret\nnew-secret\n", "passwd", id)
	require.NoError(t, err)
	require.Contains(t, out, "Password changed")

	// The old password no longer works.
	out, err = execute(t, url, "old-secret\nother\nother\n", "passwd", id)
	require.ErrorIs(t, err, errBlocked)
	require.Contains(t, out, "Your old password is incorrect")
}

func TestPasswdMismatch(t *testing.T) {
	url := newServer(t)
	id := createAlice(t, url)

	out, err := execute(t, url, "old-secret\na\nb\n", "passwd", id)
	require.ErrorIs(t, err, errBlocked)
	require.Contains(t, out, "Passwords don't match")
}

func TestPasswdEmptyField(t *testing.T) {
	url := newServer(t)
	id := createAlice(t, url)

	out, err := execute(t, url, "old-secret\n\n\n", "passwd", id)
	require.ErrorIs(t, err, errBlocked)
	require.Contains(t, out, "One of your password fields is empty")
}

func TestLogFile(t *testing.T) {
	url := newServer(t)
	logPath := filepath.Join(t.TempDir(), "profilectl.log")

	_, err := execute(t, url, "pw\npw\n", "--log-file", logPath, "--log-level", "info", "create", "carol")
	require.NoError(t, err)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(b), "denizen created")
}
