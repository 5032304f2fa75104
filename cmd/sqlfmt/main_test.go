package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/QuantaSQL/internal/source"
	"github.com/dshills/QuantaSQL/internal/testutil"
)

func runSQLFmt(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunStdin(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "pretty",
			input: "select a,b from t where a=1 and b=2",
			want:  "SELECT a, b\nFROM t\nWHERE a = 1\n\tAND b = 2;\n",
		},
		{
			name:  "compact",
			args:  []string{"-compact"},
			input: "select 1; commit",
			want:  "SELECT 1; COMMIT;\n",
		},
		{
			name:  "two space indent",
			args:  []string{"-indent", "2"},
			input: "select a from t where a=1 and b=2",
			want:  "SELECT a\nFROM t\nWHERE a = 1\n  AND b = 2;\n",
		},
		{
			name:  "mysql dialect",
			args:  []string{"-dialect", "mysql"},
			input: "show index from `db`.`t`",
			want:  "SHOW INDEX FROM `t` FROM `db`;\n",
		},
		{
			name:  "empty input",
			input: "  -- nothing\n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runSQLFmt(t, tt.input, tt.args...)
			require.Equal(t, exitOK, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		input  string
		code   int
		stderr string
	}{
		{"syntax error", nil, "SELECT a FROM", exitFailure, "<stdin>:1:14: "},
		{"unsupported", nil, "SELECT 1;\nGRANT x TO y", exitFailure, "SQLSTATE 0A000"},
		{"lexical", nil, "SELECT 'open", exitFailure, "SQLSTATE 42601"},
		{"unknown dialect", []string{"-dialect", "oracle"}, "", exitUsage, "unknown dialect"},
		{"bad indent", []string{"-indent", "wide"}, "", exitUsage, "Invalid -indent"},
		{"bad flag", []string{"-nope"}, "", exitUsage, "flag provided but not defined"},
		{"missing file", []string{"does-not-exist.sql"}, "", exitFailure, "SQLSTATE 58P01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runSQLFmt(t, tt.input, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runSQLFmt(t, "", "-version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "sqlfmt v0.1.0 (commit: unknown)\n", stdout)
}

func TestRunFilesAndOutput(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	var packed bytes.Buffer
	require.NoError(t, source.Compress(&packed, "delete from t where id=5"))
	a := testutil.WriteFile(t, dir, "a.sql", []byte("select 1"))
	b := testutil.WriteFile(t, dir, "b.sql.lz4", packed.Bytes())
	out := filepath.Join(dir, "out.sql.lz4")

	code, stdout, stderr := runSQLFmt(t, "", "-o", out, a, b)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stdout)

	src, err := (&source.Reader{}).Open(out)
	require.NoError(t, err)
	assert.Equal(t, source.CompressionLZ4, src.Compression)
	assert.Equal(t, "SELECT 1;\nDELETE FROM t WHERE id = 5;\n", src.Text)
}

func TestRunCheck(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	clean := testutil.WriteFile(t, dir, "clean.sql", []byte("SELECT 1;\n"))
	dirty := testutil.WriteFile(t, dir, "dirty.sql", []byte("select 1"))

	code, stdout, _ := runSQLFmt(t, "", "-check", clean)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)

	code, stdout, _ = runSQLFmt(t, "", "-check", clean, dirty)
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, dirty+"\n", stdout)
}

func TestRunConfigFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	cfg := testutil.WriteFile(t, dir, "sqlfmt.yaml", []byte("format:\n  indent: \"    \"\n  pretty: true\nlog:\n  level: debug\n"))

	code, stdout, stderr := runSQLFmt(t, "select a from t where a=1 and b=2", "-config", cfg)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "SELECT a\nFROM t\nWHERE a = 1\n    AND b = 2;\n", stdout)
	assert.Contains(t, stderr, "read input")

	code, _, stderr = runSQLFmt(t, "", "-config", filepath.Join(dir, "missing.json"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "Failed to load config file")
}

func TestRunEnvironment(t *testing.T) {
	t.Setenv("QUANTASQL_PRETTY", "false")
	code, stdout, _ := runSQLFmt(t, "select a from t where a=1 and b=2")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "SELECT a FROM t WHERE a = 1 AND b = 2;\n", stdout)
}

func TestRunVerifyUnreachable(t *testing.T) {
	code, _, stderr := runSQLFmt(t, "SELECT 1", "-verify-dsn", "host=127.0.0.1 port=1 sslmode=disable connect_timeout=1")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "SQLSTATE 58030")
}

func TestParseIndent(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"tab", "\t", false},
		{`\t`, "\t", false},
		{"4", "    ", false},
		{"0", "", true},
		{"9", "", true},
		{"wide", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseIndent(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunBind(t *testing.T) {
	code, stdout, stderr := runSQLFmt(t, "select * from t where a = ? and b = ?; delete from t where a = ?",
		"-compact", "-bind", "5", "-bind", "it's")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "SELECT * FROM t WHERE a = 5 AND b = 'it''s'; DELETE FROM t WHERE a = 5;\n", stdout)

	code, _, stderr = runSQLFmt(t, "select :a", "-bind", "b=1")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "missing parameter value")
}

func TestRunParams(t *testing.T) {
	code, stdout, stderr := runSQLFmt(t, "select 1; update t set a = :a where id = :id", "-params")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "<stdin>:2\t:a\tnamed\ta\t1\n<stdin>:2\t:id\tnamed\tid\t1\n", stdout)

	code, _, stderr = runSQLFmt(t, "select ? + $1", "-params")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "mixed parameter styles")
}
