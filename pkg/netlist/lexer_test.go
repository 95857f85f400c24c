package netlist

import (
	"errors"
	"testing"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kinds []TokenKind
		texts []string
	}{
		{
			name:  "type statement",
			line:  "type NAND a b y:out;",
			kinds: []TokenKind{TokenName, TokenName, TokenName, TokenName, TokenName, TokenColon, TokenName, TokenEOT},
			texts: []string{"type", "NAND", "a", "b", "y", "", "out", ""},
		},
		{
			name:  "connections and arrow",
			line:  "wire w u1.y -> u2.a;",
			kinds: []TokenKind{TokenName, TokenName, TokenName, TokenDot, TokenName, TokenArrow, TokenName, TokenDot, TokenName, TokenEOT},
			texts: []string{"wire", "w", "u1", "", "y", "", "u2", "", "a", ""},
		},
		{
			name:  "coordinates",
			line:  "@1.5,-2,+3",
			kinds: []TokenKind{TokenAt, TokenValue, TokenComma, TokenMinus, TokenValue, TokenComma, TokenPlus, TokenValue},
			texts: []string{"", "1.5", "", "", "2", "", "", "3"},
		},
		{
			name:  "digits then letters is a name",
			line:  "12abc",
			kinds: []TokenKind{TokenName},
			texts: []string{"12abc"},
		},
		{
			name:  "value ends at letter",
			line:  "1.5x",
			kinds: []TokenKind{TokenValue, TokenName},
			texts: []string{"1.5", "x"},
		},
		{
			name:  "bar markup and dashes in names",
			line:  "~{RST} top-left n_1[0]",
			kinds: []TokenKind{TokenName, TokenName, TokenName},
			texts: []string{"~{RST}", "top-left", "n_1[0]"},
		},
		{
			name:  "string with escapes",
			line:  `"a\"b\\c\n\q"`,
			kinds: []TokenKind{TokenString},
			texts: []string{"a\"b\\c\nq"},
		},
		{
			name:  "comment",
			line:  "cell u1:INV; # cell u2:INV;",
			kinds: []TokenKind{TokenName, TokenName, TokenColon, TokenName, TokenEOT},
			texts: []string{"cell", "u1", "", "INV", ""},
		},
		{
			name:  "tab and no-break space",
			line:  "a\tb\u00a0c",
			kinds: []TokenKind{TokenName, TokenName, TokenName},
			texts: []string{"a", "b", "c"},
		},
		{
			name:  "empty line",
			line:  "   ",
			kinds: []TokenKind{},
			texts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Position{Line: 1}
			toks, err := Tokenize(tt.line, &pos)
			if err != nil {
				t.Fatalf("Failed to tokenize %q: %v", tt.line, err)
			}
			got := kinds(toks)
			if len(got) != len(tt.kinds) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.kinds), len(got), toks)
			}
			for i := range got {
				if got[i] != tt.kinds[i] {
					t.Errorf("Token %d: expected kind %s, got %s", i, tt.kinds[i], got[i])
				}
				if toks[i].Text != tt.texts[i] {
					t.Errorf("Token %d: expected text %q, got %q", i, tt.texts[i], toks[i].Text)
				}
			}
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	pos := Position{Line: 1}
	toks, err := Tokenize("10 0.25 3.", &pos)
	if err != nil {
		t.Fatalf("Failed to tokenize: %v", err)
	}
	want := []float64{10, 0.25, 3}
	if len(toks) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(toks))
	}
	for i, v := range want {
		if toks[i].Kind != TokenValue || toks[i].Value != v {
			t.Errorf("Token %d: expected value %v, got %v (%s)", i, v, toks[i].Value, toks[i].Kind)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	pos := Position{Filename: "chip.nl", Line: 7, Offset: 100}
	toks, err := Tokenize("  ä x;", &pos)
	if err != nil {
		t.Fatalf("Failed to tokenize: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(toks))
	}

	first := toks[0].Pos
	if first.Filename != "chip.nl" || first.Line != 7 || first.Column != 3 || first.Offset != 102 {
		t.Errorf("Unexpected position of first token: %+v", first)
	}
	// ä is two bytes wide but one column.
	second := toks[1].Pos
	if second.Column != 5 || second.Offset != 105 {
		t.Errorf("Unexpected position of second token: %+v", second)
	}
	if pos.Offset != 100+len("  ä x;")+1 {
		t.Errorf("Expected offset to advance past the line, got %d", pos.Offset)
	}
	if pos.Line != 7 {
		t.Errorf("Tokenize must not touch the line number, got %d", pos.Line)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		msg  string
	}{
		{"unknown character", "type A $;", 8, "unknown input character '$'"},
		{"unterminated string", `type A "abc`, 8, "unterminated string literal"},
		{"bad number", "@1..2", 2, `invalid floating point number "1..2"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Position{Line: 3}
			_, err := Tokenize(tt.line, &pos)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.line)
			}
			var nerr *Error
			if !errors.As(err, &nerr) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if nerr.Kind != LexicalError {
				t.Errorf("Expected lexical error, got %s", nerr.Kind)
			}
			if nerr.Pos.Line != 3 || nerr.Pos.Column != tt.col {
				t.Errorf("Expected error at 3:%d, got %d:%d", tt.col, nerr.Pos.Line, nerr.Pos.Column)
			}
			if nerr.Msg != tt.msg {
				t.Errorf("Expected message %q, got %q", tt.msg, nerr.Msg)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Pos: Position{Line: 2, Column: 5}, Msg: "oops"}, "2:5: oops"},
		{&Error{Pos: Position{Filename: "a.nl", Line: 2, Column: 5}, Msg: "oops"}, "a.nl:2:5: oops"},
		{&Error{Pos: Position{Column: 4}, Msg: "oops"}, "4: oops"},
		{&Error{Msg: "oops"}, "oops"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
