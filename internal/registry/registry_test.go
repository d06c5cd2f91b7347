package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamblecodez/drops-cli/internal/model"
)

const fixtureYAML = `casinos:
  - id: c1
    name: Stake
    resolved_domain: stake.us
    supports_us_sweeps: true
  - id: c2
    name: Roobet
    resolved_domain: roobet.com
    supports_crypto: true
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casinos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileSource_Loads(t *testing.T) {
	src := NewFileSource(writeFixture(t, fixtureYAML))

	casinos, err := src.Casinos(context.Background())
	require.NoError(t, err)
	require.Len(t, casinos, 2)
	assert.Equal(t, "Stake", casinos[0].Name)
	assert.True(t, casinos[0].SupportsSweeps)
	assert.True(t, casinos[1].SupportsCrypto)
}

func TestFileSource_CachesByModTime(t *testing.T) {
	path := writeFixture(t, fixtureYAML)
	src := NewFileSource(path)

	first, err := src.Casinos(context.Background())
	require.NoError(t, err)

	// Same mtime: the cached slice is returned without re-parsing.
	second, err := src.Casinos(context.Background())
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0], "expected cached slice")
}

func TestFileSource_InvalidatesOnChange(t *testing.T) {
	path := writeFixture(t, fixtureYAML)
	src := NewFileSource(path)

	_, err := src.Casinos(context.Background())
	require.NoError(t, err)

	updated := fixtureYAML + `  - id: c3
    name: Lucky Bird
    resolved_domain: luckybird.io
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
	// Ensure the mtime moves even on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	casinos, err := src.Casinos(context.Background())
	require.NoError(t, err)
	assert.Len(t, casinos, 3)
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := src.Casinos(context.Background())
	assert.Error(t, err)
}

type stubLister struct {
	casinos []model.Casino
}

func (s *stubLister) ListCasinos(context.Context) ([]model.Casino, error) {
	return s.casinos, nil
}

func TestStoreSource(t *testing.T) {
	src := NewStoreSource(&stubLister{casinos: []model.Casino{{ID: "c1", Name: "Stake"}}})
	casinos, err := src.Casinos(context.Background())
	require.NoError(t, err)
	require.Len(t, casinos, 1)
	assert.Equal(t, "Stake", casinos[0].Name)
}
