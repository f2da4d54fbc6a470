package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// memoryPersister keeps the hosts text in memory and counts backend calls.
type memoryPersister struct {
	contents string
	missing  bool
	reads    int
	writes   int
	writeErr error
}

func (m *memoryPersister) Read(ctx context.Context) (string, error) {
	m.reads++
	if m.missing {
		return "", newIOError("read", "memory", fs.ErrNotExist)
	}
	return m.contents, nil
}

func (m *memoryPersister) Write(ctx context.Context, contents string) error {
	m.writes++
	if m.writeErr != nil {
		return newIOError("write", "memory", m.writeErr)
	}
	m.contents = contents
	m.missing = false
	return nil
}

// createTestHostsFile writes content to a temporary hosts file and points
// HOSTIE_HOSTS_FILE at it.
func createTestHostsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(HostsFileEnv, path)
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// run executes the command line and returns stdout, stderr and the exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}
	code := execute(context.Background(), a, append([]string{"--no-color"}, args...))
	return stdout.String(), stderr.String(), code
}
