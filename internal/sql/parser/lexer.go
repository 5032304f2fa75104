package parser

import (
	"fmt"
	"strings"
)

// LexerOptions configures the dialect-specific parts of the lexer.
type LexerOptions struct {
	// IdentQuote delimits quoted identifiers ('"' in standard SQL).
	IdentQuote byte
	// AliasQuote delimits quoted aliases; 0 disables them.
	AliasQuote byte
	// HashComments enables '#' line comments.
	HashComments bool
}

// DefaultLexerOptions returns the options for standard SQL.
func DefaultLexerOptions() LexerOptions {
	return LexerOptions{IdentQuote: '"'}
}

// Lexer tokenizes SQL input.
type Lexer struct {
	input    string
	opts     LexerOptions
	position int
	line     int
	column   int
	token    Token
}

// LexerMark is a saved lexer state. It is restored by value with Reset.
type LexerMark struct {
	position int
	line     int
	column   int
	token    Token
}

// NewLexer creates a new lexer for the given input using standard SQL
// options.
func NewLexer(input string) *Lexer {
	return NewLexerWithOptions(input, DefaultLexerOptions())
}

// NewLexerWithOptions creates a new lexer for a specific dialect.
func NewLexerWithOptions(input string, opts LexerOptions) *Lexer {
	return &Lexer{
		input:  input,
		opts:   opts,
		line:   1,
		column: 1,
	}
}

// Token returns the most recently classified token.
func (l *Lexer) Token() Token {
	return l.token
}

// Mark captures the scan position and the last classified token.
func (l *Lexer) Mark() LexerMark {
	return LexerMark{
		position: l.position,
		line:     l.line,
		column:   l.column,
		token:    l.token,
	}
}

// Reset restores a state captured by Mark.
func (l *Lexer) Reset(m LexerMark) {
	l.position = m.position
	l.line = m.line
	l.column = m.column
	l.token = m.token
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.token = l.scan()
	return l.token
}

func (l *Lexer) scan() Token {
	if tok, ok := l.skipWhitespaceAndComments(); !ok {
		return tok
	}

	if l.position >= len(l.input) {
		return l.makeToken(TokenEOF, "")
	}

	ch := l.input[l.position]

	switch {
	case ch == l.opts.IdentQuote:
		return l.readQuotedName(ch, TokenIdentifier, "unterminated quoted identifier")
	case l.opts.AliasQuote != 0 && ch == l.opts.AliasQuote:
		return l.readQuotedName(ch, TokenQuotedAlias, "unterminated quoted alias")
	}

	// Handle single-character tokens
	switch ch {
	case '(':
		return l.consumeChar(TokenLeftParen)
	case ')':
		return l.consumeChar(TokenRightParen)
	case '{':
		return l.consumeChar(TokenLeftBrace)
	case '}':
		return l.consumeChar(TokenRightBrace)
	case ',':
		return l.consumeChar(TokenComma)
	case ';':
		return l.consumeChar(TokenSemicolon)
	case '.':
		if isDigit(l.peek(1)) {
			return l.readNumber()
		}
		return l.consumeChar(TokenDot)
	case '+':
		return l.consumeChar(TokenPlus)
	case '-':
		return l.consumeChar(TokenSub)
	case '*':
		return l.consumeChar(TokenStar)
	case '/':
		return l.consumeChar(TokenSlash)
	case '%':
		return l.consumeChar(TokenPercent)
	case '=':
		return l.consumeChar(TokenEqual)
	case '&':
		return l.consumeChar(TokenAmp)
	case '^':
		return l.consumeChar(TokenCaret)
	case '~':
		return l.consumeChar(TokenTilde)
	case '|':
		if l.peek(1) == '|' {
			return l.consumeChars(TokenConcat, 2)
		}
		return l.consumeChar(TokenBar)
	case '<':
		switch {
		case l.peek(1) == '=' && l.peek(2) == '>':
			return l.consumeChars(TokenNullSafeEqual, 3)
		case l.peek(1) == '=':
			return l.consumeChars(TokenLessEqual, 2)
		case l.peek(1) == '>':
			return l.consumeChars(TokenLessGreater, 2)
		case l.peek(1) == '<':
			return l.consumeChars(TokenShiftLeft, 2)
		}
		return l.consumeChar(TokenLess)
	case '>':
		if l.peek(1) == '=' {
			return l.consumeChars(TokenGreaterEqual, 2)
		}
		if l.peek(1) == '>' {
			return l.consumeChars(TokenShiftRight, 2)
		}
		return l.consumeChar(TokenGreater)
	case '!':
		if l.peek(1) == '=' {
			return l.consumeChars(TokenNotEqual, 2)
		}
		return l.makeToken(TokenError, "unexpected character '!'")
	case '\'':
		return l.readString(1, TokenString)
	case '?':
		return l.consumeChar(TokenVariable)
	case ':', '@', '$':
		return l.readVariable()
	}

	// Prefixed literals: N'..', X'..', 0x..
	switch {
	case (ch == 'N' || ch == 'n') && l.peek(1) == '\'':
		return l.readString(2, TokenNString)
	case (ch == 'X' || ch == 'x') && l.peek(1) == '\'':
		return l.readHexString()
	case ch == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') && isHexDigit(l.peek(2)):
		return l.readHexNumber()
	}

	// Handle multi-character tokens
	if isIdentStart(ch) {
		return l.readIdentifier()
	}

	if isDigit(ch) {
		return l.readNumber()
	}

	return l.makeToken(TokenError, fmt.Sprintf("unexpected character '%c'", ch))
}

// skipWhitespaceAndComments skips whitespace and comments, stopping at a
// hint comment. It returns false with an error or hint token when scanning
// must stop.
func (l *Lexer) skipWhitespaceAndComments() (Token, bool) {
	for l.position < len(l.input) {
		ch := l.input[l.position]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v':
			l.position++
			l.column++
		case ch == '\n':
			l.position++
			l.line++
			l.column = 1
		case ch == '-' && l.peek(1) == '-':
			l.skipLineComment()
		case ch == '#' && l.opts.HashComments:
			l.skipLineComment()
		case ch == '/' && l.peek(1) == '*':
			if tok, ok := l.readBlockComment(); !ok || tok.Type == TokenHint {
				return tok, false
			}
		default:
			return Token{}, true
		}
	}
	return Token{}, true
}

// skipLineComment skips to the end of the line.
func (l *Lexer) skipLineComment() {
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.position++
		l.column++
	}
}

// readBlockComment consumes a /* ... */ comment. Hint comments (/*+ and
// /*!) are returned as TokenHint with the body between the delimiters.
func (l *Lexer) readBlockComment() (Token, bool) {
	start := l.makeToken(TokenHint, "")
	hint := l.peek(2) == '+' || l.peek(2) == '!'
	l.advanceN(2)
	bodyStart := l.position

	for l.position < len(l.input) {
		if l.input[l.position] == '*' && l.peek(1) == '/' {
			body := l.input[bodyStart:l.position]
			l.advanceN(2)
			if hint {
				start.Text = body
				return start, true
			}
			return Token{}, true
		}
		l.advanceN(1)
	}

	start.Type = TokenError
	start.Text = "unterminated comment"
	return start, false
}

// peek looks ahead n characters without consuming.
func (l *Lexer) peek(n int) byte {
	pos := l.position + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

// advanceN consumes n characters, tracking lines.
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && l.position < len(l.input); i++ {
		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.position++
	}
}

// consumeChar consumes a single character and returns a token.
func (l *Lexer) consumeChar(tokenType TokenType) Token {
	return l.consumeChars(tokenType, 1)
}

// consumeChars consumes n characters and returns a token.
func (l *Lexer) consumeChars(tokenType TokenType, n int) Token {
	tok := l.makeToken(tokenType, l.input[l.position:l.position+n])
	l.position += n
	l.column += n
	return tok
}

// makeToken creates a token at the current position.
func (l *Lexer) makeToken(tokenType TokenType, text string) Token {
	return Token{
		Type:   tokenType,
		Text:   text,
		Pos:    l.position,
		Line:   l.line,
		Column: l.column,
	}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() Token {
	tok := l.makeToken(TokenIdentifier, "")
	start := l.position

	for l.position < len(l.input) && isIdentPart(l.input[l.position]) {
		l.position++
		l.column++
	}

	tok.Text = l.input[start:l.position]
	tok.Type = LookupKeyword(strings.ToUpper(tok.Text))
	return tok
}

// readNumber reads an integer or decimal literal, including exponents.
func (l *Lexer) readNumber() Token {
	tok := l.makeToken(TokenInteger, "")
	start := l.position

	for isDigit(l.peek(0)) {
		l.advanceN(1)
	}
	if l.peek(0) == '.' && (isDigit(l.peek(1)) || l.position > start) {
		tok.Type = TokenDecimal
		l.advanceN(1)
		for isDigit(l.peek(0)) {
			l.advanceN(1)
		}
	}
	if e := l.peek(0); e == 'e' || e == 'E' {
		n := 1
		if s := l.peek(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peek(n)) {
			tok.Type = TokenDecimal
			l.advanceN(n)
			for isDigit(l.peek(0)) {
				l.advanceN(1)
			}
		}
	}
	if isIdentStart(l.peek(0)) {
		l.advanceN(1)
		tok.Type = TokenError
		tok.Text = fmt.Sprintf("malformed number %q", l.input[start:l.position])
		return tok
	}

	tok.Text = l.input[start:l.position]
	return tok
}

// readQuoted reads a quoted run starting at the current position. A doubled
// quote character escapes the quote. It returns the unescaped body.
func (l *Lexer) readQuoted(quoteChar byte) (string, bool) {
	l.advanceN(1) // opening quote
	var builder strings.Builder

	for l.position < len(l.input) {
		ch := l.input[l.position]
		if ch == quoteChar {
			if l.peek(1) == quoteChar {
				builder.WriteByte(quoteChar)
				l.advanceN(2)
				continue
			}
			l.advanceN(1)
			return builder.String(), true
		}
		builder.WriteByte(ch)
		l.advanceN(1)
	}
	return "", false
}

// readString reads a character literal whose opening quote is at offset
// prefix-1 from the current position.
func (l *Lexer) readString(prefix int, tokenType TokenType) Token {
	tok := l.makeToken(tokenType, "")
	l.advanceN(prefix - 1)
	text, ok := l.readQuoted('\'')
	if !ok {
		tok.Type = TokenError
		tok.Text = "unterminated string literal"
		return tok
	}
	tok.Text = text
	return tok
}

// readQuotedName reads a quoted identifier or alias. The token text keeps
// the delimiters and any doubled quotes as written.
func (l *Lexer) readQuotedName(quoteChar byte, tokenType TokenType, errorMsg string) Token {
	tok := l.makeToken(tokenType, "")
	start := l.position
	if _, ok := l.readQuoted(quoteChar); !ok {
		tok.Type = TokenError
		tok.Text = errorMsg
		return tok
	}
	if l.position-start == 2 {
		tok.Type = TokenError
		tok.Text = "zero-length quoted name"
		return tok
	}
	tok.Text = l.input[start:l.position]
	return tok
}

// readHexString reads X'..'.
func (l *Lexer) readHexString() Token {
	tok := l.makeToken(TokenHex, "")
	l.advanceN(1)
	text, ok := l.readQuoted('\'')
	if !ok {
		tok.Type = TokenError
		tok.Text = "unterminated hex literal"
		return tok
	}
	for i := 0; i < len(text); i++ {
		if !isHexDigit(text[i]) {
			tok.Type = TokenError
			tok.Text = fmt.Sprintf("malformed hex literal %q", text)
			return tok
		}
	}
	tok.Text = text
	return tok
}

// readHexNumber reads 0x...
func (l *Lexer) readHexNumber() Token {
	tok := l.makeToken(TokenHex, "")
	l.advanceN(2)
	start := l.position
	for isHexDigit(l.peek(0)) {
		l.advanceN(1)
	}
	if isIdentPart(l.peek(0)) {
		l.advanceN(1)
		tok.Type = TokenError
		tok.Text = fmt.Sprintf("malformed hex literal %q", l.input[start-2:l.position])
		return tok
	}
	tok.Text = l.input[start:l.position]
	return tok
}

// readVariable reads :name, @name, @@name and $n. The text keeps the
// prefix.
func (l *Lexer) readVariable() Token {
	tok := l.makeToken(TokenVariable, "")
	start := l.position
	prefix := l.input[l.position]
	l.advanceN(1)
	if prefix == '@' && l.peek(0) == '@' {
		l.advanceN(1)
	}

	nameStart := l.position
	for l.position < len(l.input) {
		ch := l.input[l.position]
		if !isIdentPart(ch) && !(prefix == '@' && ch == '.' && isIdentStart(l.peek(1))) {
			break
		}
		l.advanceN(1)
	}
	if l.position == nameStart {
		tok.Type = TokenError
		tok.Text = fmt.Sprintf("unexpected character '%c'", prefix)
		return tok
	}
	tok.Text = l.input[start:l.position]
	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}
