// Package verify checks regenerated SQL against a PostgreSQL-compatible
// server. Each statement runs in its own transaction, which is always
// rolled back, so the server only has to accept the text.
package verify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
	"github.com/dshills/QuantaSQL/internal/log"
	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/format"
)

// DefaultTimeout bounds each statement when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Verifier runs statements against a database and rolls them back.
type Verifier struct {
	db      *sql.DB
	timeout time.Duration
	logger  log.Logger
}

// Open connects to the server at dsn (key=value or postgres:// URL) and
// pings it.
func Open(ctx context.Context, dsn string, timeout time.Duration, logger log.Logger) (*Verifier, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid verify DSN: %w", err)
	}
	v := New(sql.OpenDB(connector), timeout, logger)

	pingCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	if err := v.db.PingContext(pingCtx); err != nil {
		v.db.Close()
		return nil, qerrors.IOErrorf("could not connect to verify server: %v", err).WithCause(err)
	}
	return v, nil
}

// New wraps an open database handle.
func New(db *sql.DB, timeout time.Duration, logger log.Logger) *Verifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Verifier{db: db, timeout: timeout, logger: logger}
}

// Close closes the database handle.
func (v *Verifier) Close() error {
	return v.db.Close()
}

// Report summarizes a verification run.
type Report struct {
	Checked int
	Skipped int
}

// Failure is a statement the server rejected.
type Failure struct {
	Index int
	SQL   string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("statement %d rejected by server: %v", f.Index+1, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// SQLError converts the server error, keeping its SQLSTATE code.
func (f *Failure) SQLError() *qerrors.Error {
	var pe *pq.Error
	if !errors.As(f.Err, &pe) {
		return qerrors.GetError(f.Err)
	}
	e := qerrors.New(string(pe.Code), pe.Message).WithCause(f.Err)
	if pe.Detail != "" {
		e = e.WithDetail(pe.Detail)
	}
	if pe.Hint != "" {
		e = e.WithHint(pe.Hint)
	}
	if pos, err := strconv.Atoi(pe.Position); err == nil {
		e = e.WithPosition(pos).WithNear(near(f.SQL, pos))
	}
	return e
}

// near returns the word at the 1-based character position pos.
func near(sql string, pos int) string {
	runes := []rune(sql)
	if pos < 1 || pos > len(runes) {
		return ""
	}
	start := pos - 1
	end := start
	for end < len(runes) && runes[end] != ' ' && runes[end] != '\n' && runes[end] != '\t' {
		end++
	}
	return string(runes[start:end])
}

// Skip reports whether a statement controls the transaction itself and
// cannot run inside the verification transaction.
func Skip(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.CommitStmt, *ast.RollbackStmt, *ast.SavepointStmt, *ast.ReleaseSavepointStmt:
		return true
	}
	return false
}

// Statements prints each statement on one line and runs it. The first
// rejected statement stops the run and is returned as a *Failure.
func (v *Verifier) Statements(ctx context.Context, stmts []ast.Statement, opts format.Options) (*Report, error) {
	opts.Pretty = false
	report := &Report{}
	for i, stmt := range stmts {
		if Skip(stmt) {
			report.Skipped++
			continue
		}
		text, err := format.String(stmt, opts)
		if err != nil {
			return report, err
		}
		if err := v.Exec(ctx, text); err != nil {
			return report, &Failure{Index: i, SQL: text, Err: err}
		}
		report.Checked++
	}
	v.logger.Debug("verification finished", "checked", report.Checked, "skipped", report.Skipped)
	return report, nil
}

// Exec runs one statement in a transaction and rolls it back.
func (v *Verifier) Exec(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	defer log.Latency(v.logger, time.Now(), "verify")

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			v.logger.Warn("rollback failed", log.Err(rerr))
		}
	}()

	if _, err := tx.ExecContext(ctx, text); err != nil {
		return err
	}
	return nil
}
