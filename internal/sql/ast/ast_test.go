package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributes(t *testing.T) {
	lit := &HexLit{Hex: "41"}
	assert.Nil(t, lit.Attribute("USING"))

	lit.SetAttribute("USING", "utf8mb4")
	lit.SetAttribute("ORIGIN", 3)
	assert.Equal(t, "utf8mb4", lit.Attribute("USING"))
	assert.Equal(t, []string{"ORIGIN", "USING"}, lit.AttributeNames())

	lit.SetAttribute("USING", nil)
	lit.SetAttribute("ORIGIN", nil)
	assert.Nil(t, lit.Attribute("USING"))
	assert.Empty(t, lit.AttributeNames())
}

func TestBinaryOperatorPriority(t *testing.T) {
	tests := []struct {
		tighter BinaryOperator
		looser  BinaryOperator
	}{
		{OpMultiply, OpAdd},
		{OpAdd, OpConcat},
		{OpConcat, OpShiftLeft},
		{OpBitAnd, OpBitOr},
		{OpBitOr, OpEqual},
		{OpEqual, OpAnd},
		{OpAnd, OpXor},
		{OpXor, OpOr},
	}
	for _, tt := range tests {
		t.Run(tt.tighter.String()+" "+tt.looser.String(), func(t *testing.T) {
			assert.Less(t, tt.tighter.Priority(), tt.looser.Priority())
		})
	}

	assert.Equal(t, PriorityComparison, OpLike.Priority())
	assert.Equal(t, PriorityComparison, OpIsNot.Priority())
	assert.Less(t, PriorityComparison, PriorityNot)
	assert.Less(t, PriorityNot, OpAnd.Priority())
	assert.Equal(t, PriorityLowest, BinaryOperator(-1).Priority())
	assert.Equal(t, "BinaryOperator(99)", BinaryOperator(99).String())
}

func TestIsRelational(t *testing.T) {
	assert.True(t, OpAnd.IsRelational())
	assert.True(t, OpOr.IsRelational())
	assert.False(t, OpXor.IsRelational())
	assert.False(t, OpEqual.IsRelational())
}

func TestPriority(t *testing.T) {
	a := NewIdentifier("a")
	tests := []struct {
		name     string
		expr     Expr
		expected int
	}{
		{"identifier", a, PriorityPrimary},
		{"binary", NewBinary(OpOr, a, a), 160},
		{"between", &BetweenExpr{Test: a, Begin: a, End: a}, PriorityComparison},
		{"in list", &InListExpr{Expr: a, Targets: []Expr{a}}, PriorityComparison},
		{"not", &UnaryExpr{Operator: UnaryNot, Expr: a}, PriorityNot},
		{"negate", &UnaryExpr{Operator: UnaryMinus, Expr: a}, PriorityPrimary},
		{"exists", &ExistsExpr{}, PriorityPrimary},
		{"not exists", &ExistsExpr{Not: true}, PriorityNot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Priority(tt.expr))
		})
	}
}

func TestChildrenOmitNil(t *testing.T) {
	del := &DeleteStmt{Table: NewIdentifier("t")}
	assert.Len(t, del.Children(), 1)

	c := &CaseExpr{
		Items: []*CaseItem{{Condition: NewIdentifier("x"), Value: &IntegerLit{Value: 1}}},
	}
	assert.Len(t, c.Children(), 1)

	ct := &CreateTableStmt{
		Name: NewIdentifier("t"),
		Elements: []TableElement{
			&ColumnDef{
				Name:        NewIdentifier("id"),
				Type:        &DataType{Name: "INT"},
				Constraints: []ColumnConstraint{&PrimaryKeyConstraint{}},
			},
			&UniqueConstraint{Columns: []Expr{NewIdentifier("id")}},
		},
	}
	children := ct.Children()
	assert.Len(t, children, 3)
	assert.Len(t, children[1].Children(), 3)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "LEFT JOIN", JoinLeftOuter.String())
	assert.Equal(t, ",", JoinComma.String())
	assert.Equal(t, "UNION ALL", SetUnionAll.String())
	assert.Equal(t, "DISTINCT", QuantifierDistinct.String())
	assert.Equal(t, "", QuantifierNone.String())
	assert.Equal(t, "SOME", QuantifiedSome.String())
	assert.Equal(t, "DESC", OrderDesc.String())
	assert.Equal(t, "COLUMN", CommentOnColumn.String())
	assert.Equal(t, "NOT", UnaryNot.String())
}
