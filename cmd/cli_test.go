package main

import (
	"bytes"
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func Test_CLI_ManagesUserStateThroughStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", "../configs/config.yaml")
	t.Setenv("DB_CONNECTION_STRING", filepath.Join(dir, "cli.db"))
	t.Setenv("LOG_OUTPUT_FILE", filepath.Join(dir, "logs", "errors.log"))
	t.Setenv("RESUME_DIR", filepath.Join(dir, "resumes"))

	out, err := runCLI("pipeline", "save", "-u", "u1", "adzuna-1", "Go Engineer", "--company", "Acme")
	require.NoError(t, err, out)
	assert.Contains(t, out, "saved adzuna-1")

	_, err = runCLI("pipeline", "save", "-u", "u1", "adzuna-1", "Go Engineer")
	assert.ErrorIs(t, err, models.ErrDuplicateSavedJob)

	out, err = runCLI("pipeline", "list", "-u", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "saved (1)")
	assert.Contains(t, out, "Go Engineer")
	assert.Contains(t, out, "applied (0)")

	out, err = runCLI("career", "add", "-u", "u1", "certification", "AWS", "Solutions", "Architect")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"AWS Solutions Architect"`)
	itemID := strings.TrimSpace(out[strings.LastIndex(out, " as ")+len(" as "):])

	_, err = runCLI("career", "add", "-u", "u1", "certification", "aws solutions architect")
	assert.ErrorIs(t, err, models.ErrDuplicateCareerItem)

	_, err = runCLI("career", "add", "-u", "u1", "badge", "Gopher")
	assert.Error(t, err)

	out, err = runCLI("career", "list", "-u", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "AWS Solutions Architect")

	_, err = runCLI("career", "remove", "-u", "u1", itemID)
	require.NoError(t, err)
	out, err = runCLI("career", "list", "-u", "u1")
	require.NoError(t, err)
	assert.NotContains(t, out, "AWS Solutions Architect")

	_, err = runCLI("career", "remove", "-u", "u1", itemID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = runCLI("resumes", "primary", "-u", "u1", "missing-id")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = runCLI("resumes", "delete", "-u", "u1", "missing-id")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = runCLI("pipeline", "list")
	assert.Error(t, err)
}
