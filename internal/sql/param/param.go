// Package param finds bind placeholders (?, $1, :name) in a syntax tree
// and substitutes literal values for them when the tree is printed.
package param

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/format"
)

// Style is the placeholder syntax.
type Style int

const (
	StyleNone Style = iota
	StylePositional
	StyleNumbered
	StyleNamed
)

func (s Style) String() string {
	switch s {
	case StylePositional:
		return "positional"
	case StyleNumbered:
		return "numbered"
	case StyleNamed:
		return "named"
	default:
		return "none"
	}
}

// Errors matched by errors.Is.
var (
	ErrMixedStyles  = errors.New("mixed parameter styles")
	ErrMissingValue = errors.New("missing parameter value")
)

// Parameter is one distinct placeholder of a statement.
type Parameter struct {
	// Name is the placeholder as written.
	Name  string
	Style Style
	// Index is 1-based. Named placeholders are numbered by first
	// appearance.
	Index int
	// Column is the column the value is compared with or assigned to,
	// when the surrounding syntax names one.
	Column string
	// Uses counts the occurrences.
	Uses int
}

// styleOf classifies a variable name. Session variables (@x, @@x) are not
// placeholders.
func styleOf(name string) Style {
	switch {
	case name == "?":
		return StylePositional
	case strings.HasPrefix(name, "$"):
		if _, err := strconv.Atoi(name[1:]); err == nil {
			return StyleNumbered
		}
	case strings.HasPrefix(name, ":") && len(name) > 1:
		return StyleNamed
	}
	return StyleNone
}

type collector struct {
	style      Style
	params     map[string]*Parameter
	refs       map[*ast.VariableRef]*Parameter
	positional int
	named      int
	err        error
}

// Collect returns the distinct placeholders of n ordered by index.
func Collect(n ast.Node) ([]*Parameter, error) {
	c, err := collect(n)
	if err != nil {
		return nil, err
	}
	return c.sorted(), nil
}

func collect(n ast.Node) (*collector, error) {
	c := &collector{
		params: make(map[string]*Parameter),
		refs:   make(map[*ast.VariableRef]*Parameter),
	}
	ast.Inspect(n, func(n ast.Node, ctx *ast.Context) bool {
		if c.err != nil {
			return false
		}
		if v, ok := n.(*ast.VariableRef); ok {
			c.add(v, ctx)
		}
		return true
	})
	return c, c.err
}

func (c *collector) add(v *ast.VariableRef, ctx *ast.Context) {
	style := styleOf(v.Name)
	if style == StyleNone {
		return
	}
	if c.style != StyleNone && style != c.style {
		c.err = fmt.Errorf("%w: %s placeholder %s after %s ones", ErrMixedStyles, style, v.Name, c.style)
		return
	}
	c.style = style

	key := v.Name
	if style == StylePositional {
		c.positional++
		key = "?" + strconv.Itoa(c.positional)
	}

	p, ok := c.params[key]
	if !ok {
		p = &Parameter{Name: v.Name, Style: style}
		switch style {
		case StylePositional:
			p.Index = c.positional
		case StyleNumbered:
			p.Index, _ = strconv.Atoi(v.Name[1:])
		case StyleNamed:
			c.named++
			p.Index = c.named
		}
		c.params[key] = p
	}
	p.Uses++
	if p.Column == "" {
		p.Column = columnHint(v, ctx)
	}
	c.refs[v] = p
}

func (c *collector) sorted() []*Parameter {
	out := make([]*Parameter, 0, len(c.params))
	for _, p := range c.params {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// columnHint names the column v is compared with or assigned to.
func columnHint(v *ast.VariableRef, ctx *ast.Context) string {
	var self ast.Expr = v
	switch parent := ctx.Parent().(type) {
	case *ast.BinaryExpr:
		if parent.Operator.Priority() != ast.PriorityComparison {
			return ""
		}
		if parent.Right == self {
			return columnName(parent.Left)
		}
		return columnName(parent.Right)
	case *ast.BetweenExpr:
		if parent.Test != self {
			return columnName(parent.Test)
		}
	case *ast.InListExpr:
		if parent.Expr != self {
			return columnName(parent.Expr)
		}
	case *ast.UpdateSetItem:
		if parent.Value == self {
			return columnName(parent.Column)
		}
	case *ast.ValuesClause:
		insert, ok := ctx.Ancestor(1).(*ast.InsertStmt)
		if !ok {
			return ""
		}
		for i, e := range parent.Values {
			if e == self && i < len(insert.Columns) {
				return columnName(insert.Columns[i])
			}
		}
	}
	return ""
}

func columnName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Identifier:
		return x.Name
	case *ast.Property:
		return x.Name
	}
	return ""
}

// Literal converts a text value to a literal node: integers and decimals
// become numeric literals, NULL (any case) the NULL literal, and anything
// else a character literal.
func Literal(text string) ast.Expr {
	if text == "" || strings.EqualFold(text, "NULL") {
		return &ast.NullLit{}
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &ast.IntegerLit{Value: i}
	}
	if isDecimal(text) {
		return &ast.DecimalLit{Value: text}
	}
	return &ast.CharLit{Text: text}
}

// isDecimal accepts digits with an optional sign, point and exponent. It
// rejects the Inf and NaN spellings strconv would take.
func isDecimal(s string) bool {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return false
	}
	return strings.Trim(s, "+-.0123456789eE") == ""
}

// Bind returns a printer hook that writes values in place of the
// placeholders of each node. Every node is numbered on its own, so a
// script binds the same values into each statement. Positional and
// numbered placeholders take values by index; named placeholders take
// "name=value" entries.
func Bind(values []string, nodes ...ast.Node) (format.BindFunc, error) {
	named := make(map[string]string)
	for _, v := range values {
		if name, value, ok := strings.Cut(v, "="); ok {
			named[name] = value
		}
	}

	bound := make(map[*ast.VariableRef]ast.Expr)
	for _, n := range nodes {
		c, err := collect(n)
		if err != nil {
			return nil, err
		}
		for ref, p := range c.refs {
			var text string
			switch p.Style {
			case StyleNamed:
				value, ok := named[p.Name[1:]]
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrMissingValue, p.Name)
				}
				text = value
			default:
				if p.Index < 1 || p.Index > len(values) {
					return nil, fmt.Errorf("%w: parameter %s out of range (have %d values)", ErrMissingValue, p.Name, len(values))
				}
				text = values[p.Index-1]
			}
			bound[ref] = Literal(text)
		}
	}

	return func(v *ast.VariableRef, _ *ast.Context) (ast.Expr, bool) {
		e, ok := bound[v]
		return e, ok
	}, nil
}
