package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteCatalog writes a rule catalog document into a fresh temp dir and
// returns its path.
func WriteCatalog(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write catalog")
	return path
}

// ScenarioCatalog is a small respiratory catalog shared by integration tests.
const ScenarioCatalog = `
name: scenario
rules:
  - id: R1
    if: [fever, cough, sore throat]
    then: flu
    explanation: Fever, cough and sore throat suggest influenza.
  - id: R9
    if: [flu]
    then: rest_required
`
