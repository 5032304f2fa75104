// Package format regenerates SQL text from a syntax tree.
//
// The Printer is an ast.Visitor. It drives its own traversal through
// ast.Context.WalkChild so every node sees the ancestor chain it was reached
// through, which is how clause-level formatting (a WHERE predicate spread
// over several lines) is told apart from nested expressions.
package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// wrapEvery is the number of list items printed before a soft break.
const wrapEvery = 5

// NodeFormatter prints a node the generic printer does not know. It
// returns false when it does not handle n either.
type NodeFormatter func(p *Printer, n ast.Node, ctx *ast.Context) bool

// BindFunc returns the expression to print in place of a placeholder, or
// false to print the placeholder itself.
type BindFunc func(v *ast.VariableRef, ctx *ast.Context) (ast.Expr, bool)

// Options controls the printed layout.
type Options struct {
	// Indent is the unit written once per nesting level.
	Indent string
	// Pretty selects newlines and indentation at soft breaks; otherwise a
	// single space is written.
	Pretty bool
	// Fallback handles dialect nodes.
	Fallback NodeFormatter
	// Bind substitutes values for placeholders.
	Bind BindFunc
}

// DefaultOptions returns tab-indented pretty printing.
func DefaultOptions() Options {
	return Options{Indent: "\t", Pretty: true}
}

// CompactOptions returns single-line printing.
func CompactOptions() Options {
	return Options{Indent: "\t", Pretty: false}
}

// ErrWrite is matched by errors.Is when the output sink fails.
var ErrWrite = errors.New("write failed")

// ErrUnsupportedNode is matched by errors.Is when the tree holds a node
// neither the printer nor its fallback can print.
var ErrUnsupportedNode = errors.New("unsupported node")

// WriteError reports a failure of the writer the printer was given.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "sql output: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// Is matches ErrWrite.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// SQLError converts e to a SQLSTATE-coded error.
func (e *WriteError) SQLError() *qerrors.Error {
	return qerrors.OutputError(e.Err)
}

// Printer writes SQL text for a tree.
type Printer struct {
	w      io.Writer
	opts   Options
	indent int
	err    error
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{w: w, opts: opts}
}

// Print writes n and returns the first error encountered.
func (p *Printer) Print(n ast.Node) error {
	ast.Walk(p, n)
	return p.err
}

// PrintContext writes n as if reached through the ancestors in ctx.
func (p *Printer) PrintContext(n ast.Node, ctx *ast.Context) error {
	ast.WalkContext(p, n, ctx)
	return p.err
}

// Err returns the first error encountered.
func (p *Printer) Err() error {
	return p.err
}

// Options returns the printer options.
func (p *Printer) Options() Options {
	return p.opts
}

// Write writes s verbatim.
func (p *Printer) Write(s string) {
	if p.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = &WriteError{Err: err}
	}
}

// Println writes a soft break: a newline and the current indentation when
// pretty printing, a single space otherwise.
func (p *Printer) Println() {
	if !p.opts.Pretty {
		p.Write(" ")
		return
	}
	p.Write("\n" + strings.Repeat(p.opts.Indent, p.indent))
}

// IncrementIndent opens a nesting level.
func (p *Printer) IncrementIndent() { p.indent++ }

// DecrementIndent closes a nesting level.
func (p *Printer) DecrementIndent() { p.indent-- }

// Child prints child as a child of parent.
func (p *Printer) Child(ctx *ast.Context, parent, child ast.Node) {
	if p.err != nil {
		return
	}
	ctx.WalkChild(p, parent, child)
}

// Fail records err unless an error was already recorded.
func (p *Printer) Fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Visit prints n. The printer walks children itself, so it never asks the
// walker to descend.
func (p *Printer) Visit(n ast.Node, ctx *ast.Context) bool {
	if p.err != nil {
		return false
	}
	if p.printExpr(n, ctx) || p.printQuery(n, ctx) || p.printStatement(n, ctx) {
		return false
	}
	if p.opts.Fallback != nil && p.opts.Fallback(p, n, ctx) {
		return false
	}
	p.Fail(fmt.Errorf("%w: %T", ErrUnsupportedNode, n))
	return false
}

// EndVisit implements ast.Visitor.
func (p *Printer) EndVisit(ast.Node, *ast.Context) {}

// printList prints items separated by ", ", breaking after every fifth
// item when wrap is set.
func printList[T ast.Node](p *Printer, ctx *ast.Context, parent ast.Node, items []T, wrap bool) {
	for i, item := range items {
		if i != 0 {
			p.Write(",")
			if wrap && i%wrapEvery == 0 {
				p.Println()
			} else {
				p.Write(" ")
			}
		}
		p.Child(ctx, parent, item)
	}
}

// String prints n to a string.
func String(n ast.Node, opts Options) (string, error) {
	var sb strings.Builder
	if err := NewPrinter(&sb, opts).Print(n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Fprint prints n to w.
func Fprint(w io.Writer, n ast.Node, opts Options) error {
	return NewPrinter(w, opts).Print(n)
}

// Statements prints each statement followed by a semicolon, separated by
// soft breaks.
func Statements(w io.Writer, stmts []ast.Statement, opts Options) error {
	p := NewPrinter(w, opts)
	for i, stmt := range stmts {
		if i != 0 {
			if opts.Pretty {
				p.Write("\n")
			} else {
				p.Write(" ")
			}
		}
		if err := p.Print(stmt); err != nil {
			return err
		}
		p.Write(";")
	}
	return p.Err()
}
