package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrig-shop/internal/repository/sqlite"
	"simrig-shop/internal/service"
)

// writeConfig writes a config file rooted in a temp dir and returns its path
// and the directory.
func writeConfig(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`database:
  path: %s
catalog:
  root: %s
log:
  level: warn
%s`, filepath.Join(dir, "users.db"), filepath.Join(dir, "static"), extra)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path, dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDBInit(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeConfig(t, "")
	_, err := execute(t, "db", "init", "--config", cfgPath)
	require.NoError(t, err)

	// running it again keeps the schema and the data
	_, err = execute(t, "db", "init", "--config", cfgPath)
	require.NoError(t, err)

	db, err := sqlite.Open(filepath.Join(dir, "users.db"))
	require.NoError(t, err)
	defer db.Close()

	svc := service.NewUserService(sqlite.NewUserRepository(db, nil))
	_, err = svc.Register(context.Background(), service.Registration{
		FirstName: "Alice",
		LastName:  "Liddell",
		Username:  "alice",
		Email:     "a@x.com",
		Password:  "pw1",
	})
	require.NoError(t, err)
}

func TestCatalogPush(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeConfig(t, "")
	src := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id": 1, "name": "CSL DD", "category": "wheelbases", "price": 349}]`), 0o644))

	out, err := execute(t, "catalog", "push", src, "--config", cfgPath)
	require.NoError(t, err)

	want := filepath.Join(dir, "static", "data", "products.json")
	assert.Equal(t, want, strings.TrimSpace(out))
	got, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(got), "CSL DD")
}

func TestCatalogPush_RejectsInvalidList(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeConfig(t, "")
	src := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"id": 1}`), 0o644))

	_, err := execute(t, "catalog", "push", src, "--config", cfgPath)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "static", "data", "products.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestServe_RequiresSecret(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeConfig(t, "")
	_, err := execute(t, "serve", "--config", cfgPath)
	require.ErrorContains(t, err, "session secret is required")

	// nothing is created before the configuration is accepted
	_, statErr := os.Stat(filepath.Join(dir, "users.db"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeConfig(t, "")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: loud\n"), 0o600))
	_, err := execute(t, "db", "init", "--config", cfgPath)
	require.ErrorContains(t, err, "invalid log level")
}

func TestCatalogPush_RejectsBadRecord(t *testing.T) {
	t.Parallel()

	cfgPath, dir := writeConfig(t, "")
	src := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id": 1, "name": "ok"}, {"id": 2, "name": 5}]`), 0o644))

	_, err := execute(t, "catalog", "push", src, "--config", cfgPath)
	require.ErrorContains(t, err, "product record 1")

	_, statErr := os.Stat(filepath.Join(dir, "static", "data", "products.json"))
	assert.True(t, os.IsNotExist(statErr))
}
