package words

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadEmbedded(t *testing.T) {
	entries, err := Load(context.Background(), Source{})
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	d := New(entries)
	_, err = d.PickSecret(5)
	assert.NoError(t, err)
	assert.True(t, d.IsValid("orbita"), "accent-free spelling of an embedded entry")
}

func TestLoadFile(t *testing.T) {
	p := writeList(t, "# comment\nastro\n\n  lunar  \n")
	entries, err := Load(context.Background(), Source{File: p})
	require.NoError(t, err)
	assert.Equal(t, []string{"astro", "lunar"}, entries)
}

func TestLoadEmptyFile(t *testing.T) {
	p := writeList(t, "# nothing here\n")
	_, err := Load(context.Background(), Source{File: p})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), Source{File: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

func TestLoadSQLiteImport(t *testing.T) {
	ctx := context.Background()
	list := writeList(t, "astro\npião\nastro\n")
	dbPath := filepath.Join(t.TempDir(), "data", "words.db")

	entries, err := Load(ctx, Source{DB: dbPath, File: list, Import: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"astro", "pião"}, entries)

	// a second start without import reads what is stored
	entries, err = Load(ctx, Source{DB: dbPath})
	require.NoError(t, err)
	assert.Equal(t, []string{"astro", "pião"}, entries)
}

func TestLoadSQLiteEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	_, err := Load(context.Background(), Source{DB: dbPath})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestImportSQLiteCountsNewRows(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "w.db"))
	require.NoError(t, err)
	defer db.Close()

	n, err := ImportSQLite(ctx, db, []string{"astro", "lunar", " ", "astro"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = ImportSQLite(ctx, db, []string{"lunar", "solar"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := LoadSQLite(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"astro", "lunar", "solar"}, got)
}

func TestSourceDescribe(t *testing.T) {
	assert.Equal(t, "embedded", Source{}.Describe())
	assert.Equal(t, "file:a.txt", Source{File: "a.txt"}.Describe())
	assert.Equal(t, "sqlite:w.db", Source{DB: "w.db", File: "a.txt"}.Describe())
}
