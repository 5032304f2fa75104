package source

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
	"github.com/dshills/QuantaSQL/internal/testutil"
)

func compressed(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Compress(&buf, text))
	return buf.Bytes()
}

func TestReadPlain(t *testing.T) {
	r := &Reader{}
	src, err := r.Read(strings.NewReader("SELECT 1"), "q.sql")
	require.NoError(t, err)

	assert.Equal(t, "q.sql", src.Name)
	assert.Equal(t, "SELECT 1", src.Text)
	assert.Equal(t, CompressionNone, src.Compression)
	assert.Equal(t, int64(8), src.RawSize)
}

func TestReadLZ4(t *testing.T) {
	script := testutil.Script(200)
	data := compressed(t, script)
	require.True(t, bytes.HasPrefix(data, lz4Magic))

	src, err := (&Reader{}).Read(bytes.NewReader(data), "dump.sql.lz4")
	require.NoError(t, err)
	assert.Equal(t, script, src.Text)
	assert.Equal(t, CompressionLZ4, src.Compression)
	assert.Equal(t, "lz4", src.Compression.String())
	assert.Equal(t, int64(len(data)), src.RawSize)
	assert.Less(t, src.RawSize, int64(len(script)))
}

func TestReadCorruptLZ4(t *testing.T) {
	data := append(append([]byte{}, lz4Magic...), 0xff, 0xff, 0xff)
	_, err := (&Reader{}).Read(bytes.NewReader(data), "bad.lz4")
	require.Error(t, err)
	assert.True(t, qerrors.IsError(err, qerrors.IOError))
}

func TestReadLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		data    func(t *testing.T) []byte
		wantErr bool
	}{
		{"under limit", 10, func(*testing.T) []byte { return []byte("SELECT 1") }, false},
		{"exactly at limit", 8, func(*testing.T) []byte { return []byte("SELECT 1") }, false},
		{"over limit", 7, func(*testing.T) []byte { return []byte("SELECT 1") }, true},
		{"decoded size counts", 100, func(t *testing.T) []byte { return compressed(t, strings.Repeat("x", 101)) }, true},
		{"unlimited", 0, func(*testing.T) []byte { return bytes.Repeat([]byte("a"), 1<<16) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Reader{MaxBytes: tt.limit}).Read(bytes.NewReader(tt.data(t)), "in")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLarge)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOpen(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	plain := testutil.WriteFile(t, dir, "a.sql", []byte("SELECT a FROM t"))
	packed := testutil.WriteFile(t, dir, "b.sql.lz4", compressed(t, "DELETE FROM t"))

	r := &Reader{Stdin: strings.NewReader("COMMIT")}
	sources, err := r.OpenAll([]string{plain, packed, Stdin})
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, "SELECT a FROM t", sources[0].Text)
	assert.Equal(t, "DELETE FROM t", sources[1].Text)
	assert.Equal(t, CompressionLZ4, sources[1].Compression)
	assert.Equal(t, "<stdin>", sources[2].Name)
	assert.Equal(t, "COMMIT", sources[2].Text)
}

func TestOpenAllDefaultsToStdin(t *testing.T) {
	r := &Reader{Stdin: strings.NewReader("SELECT 1")}
	sources, err := r.OpenAll(nil)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "SELECT 1", sources[0].Text)
}

func TestOpenMissing(t *testing.T) {
	_, err := (&Reader{}).Open(filepath.Join(t.TempDir(), "missing.sql"))
	require.Error(t, err)
	assert.True(t, qerrors.IsError(err, qerrors.UndefinedFile))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	for _, name := range []string{"out.sql", "out.sql.lz4", "OUT.SQL.LZ4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, "SELECT 1;\n"))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, IsCompressedPath(name), bytes.HasPrefix(raw, lz4Magic))

			src, err := (&Reader{}).Open(path)
			require.NoError(t, err)
			assert.Equal(t, "SELECT 1;\n", src.Text)
		})
	}
}

func TestWriteFileError(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.sql"), "x")
	require.Error(t, err)
	assert.True(t, qerrors.IsError(err, qerrors.IOError))
}
