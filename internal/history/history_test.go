package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddPersistsCanonicalFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hist")

	s, err := Open(path, 10)
	assert.NoError(t, err)
	assert.NoError(t, s.Add(1700000000, "echo hi"))
	assert.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "1700000000;echo hi\n", string(data))
}

func TestOpenReloadsExistingEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hist")

	s1, err := Open(path, 10)
	assert.NoError(t, err)
	assert.NoError(t, s1.Add(1, "a"))
	assert.NoError(t, s1.Add(2, "b"))
	assert.NoError(t, s1.Close())

	s2, err := Open(path, 10)
	assert.NoError(t, err)
	assert.Equal(t, []Entry{{When: 1, Command: "a"}, {When: 2, Command: "b"}}, s2.Entries())
}

func TestRingBufferEvictsOldest(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "hist"), 2)
	assert.NoError(t, err)

	assert.NoError(t, s.Add(1, "a"))
	assert.NoError(t, s.Add(2, "b"))
	assert.NoError(t, s.Add(3, "c"))

	assert.Equal(t, []Entry{{When: 2, Command: "b"}, {When: 3, Command: "c"}}, s.Entries())
}
