package ast

import "fmt"

// Priorities shared by the parser and the printer. A larger value binds
// more loosely.
const (
	PriorityPrimary    = 0
	PriorityComparison = 110
	PriorityNot        = 130
	PriorityLowest     = 1000
)

// BinaryOperator identifies an infix operator.
type BinaryOperator int

const (
	OpCollate BinaryOperator = iota
	OpBitXor
	OpMultiply
	OpDivide
	OpModulus
	OpAdd
	OpSubtract
	OpConcat
	OpShiftLeft
	OpShiftRight
	OpBitAnd
	OpBitOr
	OpEqual
	OpNotEqual
	OpLessGreater
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpNullSafeEqual
	OpLike
	OpNotLike
	OpIs
	OpIsNot
	OpAnd
	OpXor
	OpOr
)

var binaryOperators = [...]struct {
	name     string
	priority int
}{
	OpCollate:       {"COLLATE", 20},
	OpBitXor:        {"^", 50},
	OpMultiply:      {"*", 60},
	OpDivide:        {"/", 60},
	OpModulus:       {"%", 60},
	OpAdd:           {"+", 70},
	OpSubtract:      {"-", 70},
	OpConcat:        {"||", 75},
	OpShiftLeft:     {"<<", 80},
	OpShiftRight:    {">>", 80},
	OpBitAnd:        {"&", 90},
	OpBitOr:         {"|", 100},
	OpEqual:         {"=", PriorityComparison},
	OpNotEqual:      {"!=", PriorityComparison},
	OpLessGreater:   {"<>", PriorityComparison},
	OpLess:          {"<", PriorityComparison},
	OpLessEqual:     {"<=", PriorityComparison},
	OpGreater:       {">", PriorityComparison},
	OpGreaterEqual:  {">=", PriorityComparison},
	OpNullSafeEqual: {"<=>", PriorityComparison},
	OpLike:          {"LIKE", PriorityComparison},
	OpNotLike:       {"NOT LIKE", PriorityComparison},
	OpIs:            {"IS", PriorityComparison},
	OpIsNot:         {"IS NOT", PriorityComparison},
	OpAnd:           {"AND", 140},
	OpXor:           {"XOR", 150},
	OpOr:            {"OR", 160},
}

// String returns the SQL spelling of the operator.
func (op BinaryOperator) String() string {
	if op < 0 || int(op) >= len(binaryOperators) {
		return fmt.Sprintf("BinaryOperator(%d)", int(op))
	}
	return binaryOperators[op].name
}

// Priority returns the operator's binding priority.
func (op BinaryOperator) Priority() int {
	if op < 0 || int(op) >= len(binaryOperators) {
		return PriorityLowest
	}
	return binaryOperators[op].priority
}

// IsRelational reports whether op is a boolean connective (AND, OR).
func (op BinaryOperator) IsRelational() bool {
	return op == OpAnd || op == OpOr
}

// UnaryOperator identifies a prefix operator.
type UnaryOperator int

const (
	UnaryPlus UnaryOperator = iota
	UnaryMinus
	UnaryNot
	UnaryCompl
)

// String returns the SQL spelling of the operator.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "NOT"
	case UnaryCompl:
		return "~"
	default:
		return fmt.Sprintf("UnaryOperator(%d)", int(op))
	}
}

// SetQuantifier is the optional ALL/DISTINCT/UNIQUE of a query block or
// aggregate call.
type SetQuantifier int

const (
	QuantifierNone SetQuantifier = iota
	QuantifierAll
	QuantifierDistinct
	QuantifierUnique
)

func (q SetQuantifier) String() string {
	switch q {
	case QuantifierAll:
		return "ALL"
	case QuantifierDistinct:
		return "DISTINCT"
	case QuantifierUnique:
		return "UNIQUE"
	default:
		return ""
	}
}

// SubqueryQuantifier is the ANY/ALL/SOME of a quantified comparison.
type SubqueryQuantifier int

const (
	QuantifiedAny SubqueryQuantifier = iota
	QuantifiedAll
	QuantifiedSome
)

func (q SubqueryQuantifier) String() string {
	switch q {
	case QuantifiedAll:
		return "ALL"
	case QuantifiedSome:
		return "SOME"
	default:
		return "ANY"
	}
}

// SetOperator combines two queries.
type SetOperator int

const (
	SetUnion SetOperator = iota
	SetUnionAll
	SetIntersect
	SetMinus
	SetExcept
)

func (op SetOperator) String() string {
	switch op {
	case SetUnionAll:
		return "UNION ALL"
	case SetIntersect:
		return "INTERSECT"
	case SetMinus:
		return "MINUS"
	case SetExcept:
		return "EXCEPT"
	default:
		return "UNION"
	}
}
