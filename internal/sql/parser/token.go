package parser

import "fmt"

// TokenType represents the type of a SQL token.
type TokenType int

const (
	// Special tokens.
	TokenEOF TokenType = iota
	TokenError

	// Literals.
	TokenIdentifier
	TokenQuotedAlias // Dialect alias quote, e.g. MySQL "name"
	TokenInteger
	TokenDecimal
	TokenString
	TokenNString
	TokenHex
	TokenVariable // ?, :name, @name, @@name, $1
	TokenHint     // /*+ ... */ or /*! ... */

	// Reserved keywords.
	TokenSelect
	TokenFrom
	TokenWhere
	TokenGroup
	TokenBy
	TokenHaving
	TokenOrder
	TokenAsc
	TokenDesc
	TokenAs
	TokenDistinct
	TokenAll
	TokenUnique
	TokenUnion
	TokenIntersect
	TokenMinus
	TokenExcept
	TokenInsert
	TokenInto
	TokenValues
	TokenUpdate
	TokenSet
	TokenDelete
	TokenCreate
	TokenTable
	TokenDrop
	TokenIndex
	TokenOn
	TokenAnd
	TokenOr
	TokenXor
	TokenNot
	TokenNull
	TokenLike
	TokenIn
	TokenBetween
	TokenExists
	TokenAny
	TokenSome
	TokenCase
	TokenWhen
	TokenThen
	TokenElse
	TokenEnd
	TokenCast
	TokenCollate
	TokenDefault
	TokenConstraint
	TokenPrimary
	TokenCheck
	TokenForeign
	TokenReferences
	TokenJoin
	TokenInner
	TokenLeft
	TokenRight
	TokenFull
	TokenOuter
	TokenCross
	TokenNatural
	TokenIs
	TokenAlter
	TokenGrant
	TokenRevoke
	TokenUsing
	TokenTo
	TokenWith

	// Non-reserved keywords. These may also be used as names.
	TokenTruncate
	TokenCall
	TokenUse
	TokenComment
	TokenColumn
	TokenSavepoint
	TokenRelease
	TokenRollback
	TokenCommit
	TokenWork
	TokenView
	TokenDatabase
	TokenReplace
	TokenGlobal
	TokenLocal
	TokenTemporary
	TokenKey
	TokenOver
	TokenPartition
	TokenCurrent
	TokenOf
	TokenShow
	TokenMerge
	TokenExplain
	TokenDescribe
	TokenLock
	TokenRename
	TokenBegin

	// Operators.
	TokenPlus
	TokenSub
	TokenStar
	TokenSlash
	TokenPercent
	TokenEqual
	TokenNotEqual    // !=
	TokenLessGreater // <>
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenNullSafeEqual // <=>
	TokenConcat        // ||
	TokenShiftLeft
	TokenShiftRight
	TokenAmp
	TokenBar
	TokenCaret
	TokenTilde

	// Delimiters.
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenComma
	TokenSemicolon
	TokenDot
)

// tokenStrings maps token types to their string representations.
var tokenStrings = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenError:       "ERROR",
	TokenIdentifier:  "IDENT",
	TokenQuotedAlias: "ALIAS",
	TokenInteger:     "INTEGER",
	TokenDecimal:     "DECIMAL",
	TokenString:      "STRING",
	TokenNString:     "NSTRING",
	TokenHex:         "HEX",
	TokenVariable:    "VARIABLE",
	TokenHint:        "HINT",

	TokenPlus:          "+",
	TokenSub:           "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenEqual:         "=",
	TokenNotEqual:      "!=",
	TokenLessGreater:   "<>",
	TokenLess:          "<",
	TokenLessEqual:     "<=",
	TokenGreater:       ">",
	TokenGreaterEqual:  ">=",
	TokenNullSafeEqual: "<=>",
	TokenConcat:        "||",
	TokenShiftLeft:     "<<",
	TokenShiftRight:    ">>",
	TokenAmp:           "&",
	TokenBar:           "|",
	TokenCaret:         "^",
	TokenTilde:         "~",

	TokenLeftParen:  "(",
	TokenRightParen: ")",
	TokenLeftBrace:  "{",
	TokenRightBrace: "}",
	TokenComma:      ",",
	TokenSemicolon:  ";",
	TokenDot:        ".",
}

// keywords maps upper-case keyword spellings to token types.
var keywords = map[string]TokenType{
	"SELECT":     TokenSelect,
	"FROM":       TokenFrom,
	"WHERE":      TokenWhere,
	"GROUP":      TokenGroup,
	"BY":         TokenBy,
	"HAVING":     TokenHaving,
	"ORDER":      TokenOrder,
	"ASC":        TokenAsc,
	"DESC":       TokenDesc,
	"AS":         TokenAs,
	"DISTINCT":   TokenDistinct,
	"ALL":        TokenAll,
	"UNIQUE":     TokenUnique,
	"UNION":      TokenUnion,
	"INTERSECT":  TokenIntersect,
	"MINUS":      TokenMinus,
	"EXCEPT":     TokenExcept,
	"INSERT":     TokenInsert,
	"INTO":       TokenInto,
	"VALUES":     TokenValues,
	"UPDATE":     TokenUpdate,
	"SET":        TokenSet,
	"DELETE":     TokenDelete,
	"CREATE":     TokenCreate,
	"TABLE":      TokenTable,
	"DROP":       TokenDrop,
	"INDEX":      TokenIndex,
	"ON":         TokenOn,
	"AND":        TokenAnd,
	"OR":         TokenOr,
	"XOR":        TokenXor,
	"NOT":        TokenNot,
	"NULL":       TokenNull,
	"LIKE":       TokenLike,
	"IN":         TokenIn,
	"BETWEEN":    TokenBetween,
	"EXISTS":     TokenExists,
	"ANY":        TokenAny,
	"SOME":       TokenSome,
	"CASE":       TokenCase,
	"WHEN":       TokenWhen,
	"THEN":       TokenThen,
	"ELSE":       TokenElse,
	"END":        TokenEnd,
	"CAST":       TokenCast,
	"COLLATE":    TokenCollate,
	"DEFAULT":    TokenDefault,
	"CONSTRAINT": TokenConstraint,
	"PRIMARY":    TokenPrimary,
	"CHECK":      TokenCheck,
	"FOREIGN":    TokenForeign,
	"REFERENCES": TokenReferences,
	"JOIN":       TokenJoin,
	"INNER":      TokenInner,
	"LEFT":       TokenLeft,
	"RIGHT":      TokenRight,
	"FULL":       TokenFull,
	"OUTER":      TokenOuter,
	"CROSS":      TokenCross,
	"NATURAL":    TokenNatural,
	"IS":         TokenIs,
	"ALTER":      TokenAlter,
	"GRANT":      TokenGrant,
	"REVOKE":     TokenRevoke,
	"USING":      TokenUsing,
	"TO":         TokenTo,
	"WITH":       TokenWith,

	"TRUNCATE":  TokenTruncate,
	"CALL":      TokenCall,
	"USE":       TokenUse,
	"COMMENT":   TokenComment,
	"COLUMN":    TokenColumn,
	"SAVEPOINT": TokenSavepoint,
	"RELEASE":   TokenRelease,
	"ROLLBACK":  TokenRollback,
	"COMMIT":    TokenCommit,
	"WORK":      TokenWork,
	"VIEW":      TokenView,
	"DATABASE":  TokenDatabase,
	"REPLACE":   TokenReplace,
	"GLOBAL":    TokenGlobal,
	"LOCAL":     TokenLocal,
	"TEMPORARY": TokenTemporary,
	"KEY":       TokenKey,
	"OVER":      TokenOver,
	"PARTITION": TokenPartition,
	"CURRENT":   TokenCurrent,
	"OF":        TokenOf,
	"SHOW":      TokenShow,
	"MERGE":     TokenMerge,
	"EXPLAIN":   TokenExplain,
	"DESCRIBE":  TokenDescribe,
	"LOCK":      TokenLock,
	"RENAME":    TokenRename,
	"BEGIN":     TokenBegin,
}

func init() {
	for word, t := range keywords {
		tokenStrings[t] = word
	}
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if s, ok := tokenStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// IsKeyword reports whether t is a reserved or non-reserved keyword.
func (t TokenType) IsKeyword() bool {
	return t >= TokenSelect && t < TokenPlus
}

// IsReserved reports whether t is a keyword that can never be a name.
func (t TokenType) IsReserved() bool {
	return t >= TokenSelect && t < TokenTruncate
}

// Token represents a SQL token.
type Token struct {
	Type   TokenType
	Text   string
	Pos    int
	Line   int
	Column int
}

// String returns a string representation of the token.
func (t Token) String() string {
	switch t.Type { //nolint:exhaustive
	case TokenIdentifier, TokenQuotedAlias, TokenInteger, TokenDecimal,
		TokenString, TokenNString, TokenHex, TokenVariable, TokenHint, TokenError:
		return fmt.Sprintf("%s(%s)", t.Type, t.Text)
	}
	return t.Type.String()
}

// LookupKeyword returns the token type for an upper-case keyword, or
// TokenIdentifier.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}
