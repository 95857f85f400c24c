package netlist

import (
	"strconv"
	"strings"
)

// TokenKind is the lexical class of a token.
type TokenKind int

const (
	TokenEOT TokenKind = iota // end of statement (;)
	TokenName
	TokenString
	TokenValue
	TokenComma
	TokenPlus
	TokenMinus
	TokenColon
	TokenDot
	TokenAt
	TokenArrow
)

var tokenKindNames = [...]string{
	TokenEOT:    "';'",
	TokenName:   "name",
	TokenString: "string",
	TokenValue:  "number",
	TokenComma:  "','",
	TokenPlus:   "'+'",
	TokenMinus:  "'-'",
	TokenColon:  "':'",
	TokenDot:    "'.'",
	TokenAt:     "'@'",
	TokenArrow:  "'->'",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical token. Text holds the payload of names and
// strings, Value the payload of numbers.
type Token struct {
	Kind  TokenKind
	Pos   Position
	Text  string
	Value float64
}

// Is reports whether t is a name equal to keyword, ignoring case.
func (t Token) Is(keyword string) bool {
	return t.Kind == TokenName && strings.EqualFold(t.Text, keyword)
}

func (t Token) String() string {
	switch t.Kind {
	case TokenName:
		return "'" + t.Text + "'"
	case TokenString:
		return strconv.Quote(t.Text)
	case TokenValue:
		return formatFloat(t.Value)
	}
	return t.Kind.String()
}
