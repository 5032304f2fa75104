// Package dialect is the registry of SQL dialects by name. A dialect bundles
// the parser grammar hooks with the printer fallback for its own nodes.
package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/QuantaSQL/internal/sql/dialect/mysql"
	"github.com/dshills/QuantaSQL/internal/sql/format"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
)

// Default is the name used when none is given.
const Default = "generic"

// Dialect is a registered dialect.
type Dialect struct {
	Name      string
	Parser    *parser.Dialect
	Formatter format.NodeFormatter
}

// ParserOptions returns opts preceded by the option selecting d.
func (d *Dialect) ParserOptions(opts ...parser.Option) []parser.Option {
	return append([]parser.Option{parser.WithDialect(d.Parser)}, opts...)
}

// FormatOptions returns opts with the dialect's fallback installed.
func (d *Dialect) FormatOptions(opts format.Options) format.Options {
	if d.Formatter != nil {
		opts.Fallback = d.Formatter
	}
	return opts
}

// UnknownDialectError is returned by Lookup for an unregistered name.
type UnknownDialectError struct {
	Name string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %s)", e.Name, strings.Join(Names(), ", "))
}

var (
	mu       sync.RWMutex
	registry = map[string]*Dialect{
		"generic": {Name: "generic", Parser: parser.Generic},
		"mysql":   {Name: "mysql", Parser: mysql.Dialect, Formatter: mysql.FormatNode},
	}
)

// Register adds or replaces a dialect. Names are case insensitive.
func Register(d *Dialect) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(d.Name)] = d
}

// Lookup returns the dialect registered under name. An empty name selects
// Default.
func Lookup(name string) (*Dialect, error) {
	if name == "" {
		name = Default
	}
	mu.RLock()
	d, ok := registry[strings.ToLower(name)]
	mu.RUnlock()
	if !ok {
		return nil, &UnknownDialectError{Name: name}
	}
	return d, nil
}

// Names returns the registered dialect names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
