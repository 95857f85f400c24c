package netlist

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Position locates a token or definition in the input.
// An empty Filename means standard input.
type Position = lexer.Position

// ErrorKind classifies a netlist error.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	SemanticError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical"
	case SyntaxError:
		return "syntax"
	case SemanticError:
		return "semantic"
	}
	return "unknown"
}

// Error is returned for every problem found in a netlist. It satisfies
// participle.Error so callers can treat it like any other parse error.
type Error struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

var _ participle.Error = (*Error)(nil)

func (e *Error) Message() string          { return e.Msg }
func (e *Error) Position() lexer.Position { return e.Pos }

// Error renders the error as "[file:]line:col: message", or "col: message"
// when the line is unknown.
func (e *Error) Error() string {
	if e.Pos.Line == 0 && e.Pos.Column != 0 {
		msg := fmt.Sprintf("%d: %s", e.Pos.Column, e.Msg)
		if e.Pos.Filename != "" {
			msg = e.Pos.Filename + ":" + msg
		}
		return msg
	}
	return participle.FormatError(e)
}

func lexErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Kind: LexicalError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Kind: SyntaxError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func semanticErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Kind: SemanticError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
