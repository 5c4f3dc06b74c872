package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/stellarforge/pkg/stellarforge"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STELLARFORGE_API_KEY", "sf-cli-key")
	t.Setenv("STELLARFORGE_LOG_LEVEL", "error")
	t.Setenv("STELLARFORGE_MOCK_ID_MODE", "fixed")
	t.Setenv("STELLARFORGE_STORAGE_TYPE", "bbolt")
	t.Setenv("STELLARFORGE_BBOLT_PATH", filepath.Join(t.TempDir(), "stars.db"))
}

func TestRegisterThenList(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "register", "--name", "PROV-2025-ALPHA", "--ra", "5.67", "--dec", "-32.11",
		"--observed-by", "Vera C. Rubin Observatory", "--json")
	require.NoError(t, err)

	var star stellarforge.Star
	require.NoError(t, json.Unmarshal([]byte(out), &star))
	assert.Equal(t, "mock-star-123", star.ID)
	assert.Equal(t, -32.11, star.Dec)

	out, err = runCLI(t, "stars", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "mock-star-123")
	assert.Contains(t, out, "PROV-2025-ALPHA")

	out, err = runCLI(t, "stars", "show", "mock-star-123")
	require.NoError(t, err)
	assert.Contains(t, out, "<Star ID=mock-star-123, Name='PROV-2025-ALPHA'>")
}

func TestRegisterReportsErrorKind(t *testing.T) {
	setupEnv(t)

	_, err := runCLI(t, "register", "--name", "x", "--ra", "25", "--dec", "0", "--observed-by", "o")
	require.Error(t, err)
	assert.True(t, errors.Is(err, stellarforge.ErrInvalidCoordinates))
	assert.True(t, strings.HasPrefix(err.Error(), "check the coordinates"))

	_, err = runCLI(t, "register", "--name", "x", "--ra", "1", "--dec", "0", "--observed-by", "o", "--api-key", "INVALID-KEY-401")
	assert.True(t, errors.Is(err, stellarforge.ErrAuthentication))
}

func TestRegisterRequiresFlags(t *testing.T) {
	setupEnv(t)
	_, err := runCLI(t, "register", "--name", "x")
	assert.Error(t, err)
}

func TestDescribeError(t *testing.T) {
	assert.NoError(t, describeError(nil))
	err := describeError(&stellarforge.Error{Kind: stellarforge.KindServiceUnavailable, Message: "API server error."})
	assert.Contains(t, err.Error(), "try again later")
}

func TestExecuteFlushesLoggerOnFailure(t *testing.T) {
	setupEnv(t)

	flushed := 0
	orig := closeLogger
	closeLogger = func() error {
		flushed++
		return nil
	}
	t.Cleanup(func() { closeLogger = orig })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"register", "--name", "x", "--ra", "25", "--dec", "0", "--observed-by", "o"})

	err := execute(context.Background(), root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, stellarforge.ErrInvalidCoordinates))
	assert.Equal(t, 1, flushed)

	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"stars", "list"})
	require.NoError(t, execute(context.Background(), root))
	assert.Equal(t, 2, flushed)
}
