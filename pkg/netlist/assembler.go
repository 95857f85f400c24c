package netlist

// Assembler collects tokens across input lines and hands out complete
// statements, each ending in a TokenEOT.
type Assembler struct {
	queue []Token
	eots  int
}

// Feed appends the tokens of one line.
func (a *Assembler) Feed(toks []Token) {
	for _, t := range toks {
		if t.Kind == TokenEOT {
			a.eots++
		}
	}
	a.queue = append(a.queue, toks...)
}

// Next removes and returns the next complete statement. It reports false
// when more input is needed.
func (a *Assembler) Next() ([]Token, bool) {
	if a.eots == 0 {
		return nil, false
	}
	for i, t := range a.queue {
		if t.Kind != TokenEOT {
			continue
		}
		stmt := make([]Token, i+1)
		copy(stmt, a.queue[:i+1])
		a.queue = a.queue[i+1:]
		if len(a.queue) == 0 {
			a.queue = nil
		}
		a.eots--
		return stmt, true
	}
	return nil, false
}

// Pending returns the first token of an unfinished statement, if any.
func (a *Assembler) Pending() (Token, bool) {
	if len(a.queue) == 0 {
		return Token{}, false
	}
	return a.queue[0], true
}

// Finish checks that no statement is left incomplete at the end of input.
func (a *Assembler) Finish() error {
	if t, ok := a.Pending(); ok {
		return syntaxErrorf(t.Pos, "end of file expected")
	}
	return nil
}
