package testutil

import (
	"fmt"
	"strings"
)

// Columns generates n column names with the given prefix.
func Columns(prefix string, n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return cols
}

// WideSelect generates a SELECT of n columns from table.
func WideSelect(table string, n int) string {
	return "SELECT " + strings.Join(Columns("c", n), ", ") + " FROM " + table
}

// Script generates a script of n statements cycling through Statements,
// each terminated by a semicolon.
func Script(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(Statements[i%len(Statements)])
		sb.WriteString(";\n")
	}
	return sb.String()
}
