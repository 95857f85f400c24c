package netlist

import (
	"bufio"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Statement grammar. Tokens come from Tokenize, one assembled statement at
// a time, so the grammar only has to describe a single statement ending in
// EOT. Keywords are Name tokens matched without regard to case.

var tokenSymbols = map[string]lexer.TokenType{
	"EOF":    lexer.EOF,
	"EOT":    lexer.TokenType(TokenEOT),
	"Name":   lexer.TokenType(TokenName),
	"String": lexer.TokenType(TokenString),
	"Value":  lexer.TokenType(TokenValue),
	"Comma":  lexer.TokenType(TokenComma),
	"Plus":   lexer.TokenType(TokenPlus),
	"Minus":  lexer.TokenType(TokenMinus),
	"Colon":  lexer.TokenType(TokenColon),
	"Dot":    lexer.TokenType(TokenDot),
	"At":     lexer.TokenType(TokenAt),
	"Arrow":  lexer.TokenType(TokenArrow),
}

// tokenDefinition adapts Tokenize to participle.
type tokenDefinition struct{}

var _ lexer.Definition = tokenDefinition{}

func (tokenDefinition) Symbols() map[string]lexer.TokenType { return tokenSymbols }

// Lex tokenizes r line by line.
func (tokenDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	pos := Position{Filename: filename, Line: 1}
	var toks []Token
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, err := Tokenize(scanner.Text(), &pos)
		if err != nil {
			return nil, err
		}
		toks = append(toks, line...)
		pos.Line++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return newTokenStream(toks), nil
}

// tokenStream replays already tokenized input.
type tokenStream struct {
	toks []lexer.Token
	eof  lexer.Token
}

func newTokenStream(toks []Token) *tokenStream {
	s := &tokenStream{toks: make([]lexer.Token, len(toks))}
	for i, t := range toks {
		s.toks[i] = lexer.Token{Type: lexer.TokenType(t.Kind), Value: tokenValue(t), Pos: t.Pos}
	}
	if len(toks) > 0 {
		s.eof = lexer.EOFToken(toks[len(toks)-1].Pos)
	} else {
		s.eof = lexer.EOFToken(Position{})
	}
	return s
}

func (s *tokenStream) Next() (lexer.Token, error) {
	if len(s.toks) == 0 {
		return s.eof, nil
	}
	t := s.toks[0]
	s.toks = s.toks[1:]
	return t, nil
}

func tokenValue(t Token) string {
	switch t.Kind {
	case TokenName, TokenString:
		return t.Text
	case TokenValue:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case TokenEOT:
		return ";"
	case TokenComma:
		return ","
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenColon:
		return ":"
	case TokenDot:
		return "."
	case TokenAt:
		return "@"
	case TokenArrow:
		return "->"
	}
	return ""
}

// statementNode is one member of the statement union.
type statementNode interface {
	build(defaultDocURL string) (Statement, error)
}

type statementGrammar struct {
	Statement statementNode `@@ EOT`
}

var statementParser = participle.MustBuild[statementGrammar](
	participle.Lexer(tokenDefinition{}),
	participle.Union[statementNode](
		&typeGrammar{},
		&signalGrammar{},
		&cellGrammar{},
		&wireGrammar{},
		&aliasGrammar{},
		&labelGrammar{},
		&categoryGrammar{},
		&defineGrammar{},
	),
	participle.CaseInsensitive("Name"),
	participle.UseLookahead(2),
)

type number struct {
	Pos   lexer.Position
	Value float64 `@((Plus | Minus)? Value)`
}

// coordGrammar is "[name] @ n[,n...]".
type coordGrammar struct {
	Pos    lexer.Position
	Name   string    `@Name? At`
	Values []*number `@@ (Comma @@)*`
}

// pointsGrammar is an unnamed coordinate list.
type pointsGrammar struct {
	Pos    lexer.Position
	Values []*number `At @@ (Comma @@)*`
}

type orientGrammar struct {
	Rotation string       `@("rot0":Name | "rot90":Name | "rot180":Name | "rot270":Name)`
	Flip     *lexer.Token `(Comma @Name)?`
}

// portGrammar stops before a named coordinate and before the doc clause.
type portGrammar struct {
	Pos       lexer.Position
	Name      string       `(?! "doc":Name String) @Name (?! At)`
	Direction *lexer.Token `(Colon @Name)?`
}

type docGrammar struct {
	Keyword string `@"doc":Name`
	URL     string `@String*`
}

type typeGrammar struct {
	Pos         lexer.Position
	Name        string          `"type":Name @Name`
	Color       *lexer.Token    `(Colon @Name)?`
	Ports       []*portGrammar  `@@*`
	Coords      []*coordGrammar `@@*`
	Description string          `@String*`
	Doc         *docGrammar     `@@?`
}

type signalGrammar struct {
	Pos         lexer.Position
	Name        string       `"signal":Name @Name`
	Color       *lexer.Token `(Colon @Name)?`
	Description string       `@String*`
}

type cellGrammar struct {
	Pos         lexer.Position
	Name        string          `"cell":Name @Name`
	Type        string          `Colon @Name`
	Orientation *orientGrammar  `@@?`
	Coords      []*coordGrammar `@@*`
	Flags       []string        `@("spare":Name | "virtual":Name | "comp":Name | "trivial":Name)*`
	Category    string          `(Arrow @Name)?`
	Description string          `@String*`
}

type connGrammar struct {
	Pos  lexer.Position
	Cell string `@Name Dot`
	Port string `@Name`
}

type wireGrammar struct {
	Pos         lexer.Position
	Name        string           `"wire":Name @Name`
	Signal      string           `(Colon @Name)?`
	Unchecked   bool             `@("unchecked":Name (?! Dot))?`
	Sources     []*connGrammar   `@@*`
	Drains      []*connGrammar   `(Arrow @@*)?`
	Coords      []*pointsGrammar `@@*`
	Description string           `@String*`
}

type aliasName struct {
	Pos  lexer.Position
	Name string `@Name`
}

type aliasGrammar struct {
	Pos    lexer.Position
	Kind   lexer.Token  `"alias":Name @Name`
	Names  []*aliasName `@@*`
	Arrow  lexer.Token  `@Arrow`
	Target string       `@Name`
}

type labelGrammar struct {
	Pos         lexer.Position
	Text        string         `"label":Name @String*`
	Color       *lexer.Token   `(Colon @Name)?`
	Size        *number        `@@`
	Orientation *orientGrammar `@@?`
	Point       *pointsGrammar `@@`
	Alignment   string         `@("center":Name | "top-left":Name | "top-center":Name | "top-right":Name | "center-left":Name | "center-right":Name | "bottom-left":Name | "bottom-center":Name | "bottom-right":Name)?`
}

type categoryGrammar struct {
	Pos         lexer.Position
	Name        string       `"category":Name @Name`
	Color       *lexer.Token `(Colon @Name)?`
	Description string       `@String*`
}

type defineGrammar struct {
	Pos    lexer.Position
	Key    string   `"define":Name @Name`
	Text   []string `( @String+`
	Number *number  `| @@ )`
}
