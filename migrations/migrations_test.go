package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchema(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"0001_init.up.sql", "0001_init.down.sql"}, names)

	up, err := fs.ReadFile(FS, "0001_init.up.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(up), "WHERE status = 'scheduled'"))
}
