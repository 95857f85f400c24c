package netlist

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var keywords = map[string]bool{
	"type": true, "signal": true, "cell": true, "wire": true,
	"alias": true, "label": true, "category": true, "define": true,
}

// ParseStatement parses one complete statement as produced by the
// Assembler. An empty statement (a lone ';') yields a nil Statement.
// defaultDocURL is used for types that carry no explicit doc clause.
func ParseStatement(toks []Token, defaultDocURL string) (Statement, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEOT {
		panic("netlist: statement without terminator")
	}

	t := toks[0]
	switch {
	case t.Kind == TokenEOT:
		return nil, nil
	case t.Kind != TokenName:
		return nil, syntaxErrorf(t.Pos, "unexpected token %s at start of statement", t)
	case !keywords[strings.ToLower(t.Text)]:
		return nil, syntaxErrorf(t.Pos, "invalid statement '%s'", t.Text)
	}

	peeker, err := lexer.Upgrade(newTokenStream(toks))
	if err != nil {
		return nil, syntaxErrorf(t.Pos, "%s", err)
	}
	g, err := statementParser.ParseFromLexer(peeker)
	if err != nil {
		return nil, grammarError(t.Pos, err)
	}
	return g.Statement.build(defaultDocURL)
}

// grammarError turns a participle failure into a syntax error.
func grammarError(pos Position, err error) error {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		return syntaxErrorf(perr.Position(), "%s", perr.Message())
	}
	return syntaxErrorf(pos, "%s", err)
}

var colors = map[string]bool{
	"red": true, "lime": true, "blue": true, "pink": true,
	"navy": true, "yellow": true, "cyan": true, "magenta": true,
	"orange": true, "purple": true, "teal": true, "green": true,
	"brown": true, "gray": true, "black": true, "white": true,
}

func checkColor(tok *lexer.Token) (string, error) {
	if tok == nil {
		return "", nil
	}
	color := strings.ToLower(tok.Value)
	if !colors[color] {
		return "", syntaxErrorf(tok.Pos, "invalid color '%s'", tok.Value)
	}
	return color, nil
}

func numbers(list []*number) []float64 {
	out := make([]float64, len(list))
	for i, n := range list {
		out[i] = n.Value
	}
	return out
}

func namedCoords(list []*coordGrammar) Coords {
	coords := Coords{}
	for _, c := range list {
		name := ""
		if c.Name != "" {
			name = Canonicalize(c.Name)
		}
		coords.Add(name, numbers(c.Values))
	}
	return coords
}

func (g *orientGrammar) orientation() (Orientation, bool, error) {
	if g == nil {
		return OrientNone, false, nil
	}
	var o Orientation
	for k, name := range orientationNames {
		if strings.EqualFold(g.Rotation, name) {
			o = k
		}
	}
	if g.Flip == nil {
		return o, false, nil
	}
	if !strings.EqualFold(g.Flip.Value, "flip") {
		return o, false, syntaxErrorf(g.Flip.Pos, "invalid orientation, 'flip' expected")
	}
	return o, true, nil
}

func (g *typeGrammar) build(defaultDocURL string) (Statement, error) {
	t := NewTypeDef(g.Pos, Canonicalize(g.Name))
	var err error
	if t.Color, err = checkColor(g.Color); err != nil {
		return nil, err
	}

	for _, p := range g.Ports {
		port := &PortDefinition{Pos: p.Pos, Name: Canonicalize(p.Name), Direction: Input}
		if p.Direction != nil {
			dir, ok := ParsePortDirection(p.Direction.Value)
			if !ok {
				return nil, syntaxErrorf(p.Direction.Pos, "invalid port direction '%s'", p.Direction.Value)
			}
			port.Direction = dir
		}
		if err := t.AddPort(port); err != nil {
			return nil, err
		}
	}

	t.Coords = namedCoords(g.Coords)
	t.Description = g.Description
	t.DocURL = defaultDocURL
	if g.Doc != nil {
		t.DocURL = g.Doc.URL
	}
	return t, nil
}

func (g *signalGrammar) build(string) (Statement, error) {
	s := &SignalDef{Pos: g.Pos, Name: Canonicalize(g.Name), Description: g.Description}
	var err error
	if s.Color, err = checkColor(g.Color); err != nil {
		return nil, err
	}
	return s, nil
}

func (g *cellGrammar) build(string) (Statement, error) {
	cell := &CellDef{
		Pos:         g.Pos,
		Name:        Canonicalize(g.Name),
		Type:        Canonicalize(g.Type),
		Coords:      namedCoords(g.Coords),
		Category:    g.Category,
		Description: g.Description,
	}
	var err error
	if cell.Orientation, cell.Flipped, err = g.Orientation.orientation(); err != nil {
		return nil, err
	}
	for _, flag := range g.Flags {
		switch strings.ToLower(flag) {
		case "spare":
			cell.Spare = true
		case "virtual":
			cell.Virtual = true
		case "comp":
			cell.Comp = true
		case "trivial":
			cell.Trivial = true
		}
	}
	return cell, nil
}

func connections(list []*connGrammar) []WireConnection {
	var out []WireConnection
	for _, c := range list {
		out = append(out, WireConnection{Pos: c.Pos, Cell: Canonicalize(c.Cell), Port: Canonicalize(c.Port)})
	}
	return out
}

func (g *wireGrammar) build(string) (Statement, error) {
	w := &WireDef{
		Pos:         g.Pos,
		Name:        Canonicalize(g.Name),
		Unchecked:   g.Unchecked,
		Sources:     connections(g.Sources),
		Drains:      connections(g.Drains),
		Description: g.Description,
	}
	if g.Signal != "" {
		w.Signal = Canonicalize(g.Signal)
	}
	for _, c := range g.Coords {
		w.Coords = append(w.Coords, numbers(c.Values))
	}
	return w, nil
}

func (g *aliasGrammar) build(string) (Statement, error) {
	a := &AliasDef{Pos: g.Pos}
	switch strings.ToLower(g.Kind.Value) {
	case "cell":
		a.Kind = AliasCell
	case "wire":
		a.Kind = AliasWire
	default:
		return nil, syntaxErrorf(g.Kind.Pos, "'cell' or 'wire' expected")
	}
	if len(g.Names) == 0 {
		return nil, syntaxErrorf(g.Arrow.Pos, "at least one alias expected")
	}

	seen := map[string]bool{}
	for _, n := range g.Names {
		name := Canonicalize(n.Name)
		if seen[name] {
			return nil, semanticErrorf(n.Pos, "duplicate alias '%s' found", name)
		}
		seen[name] = true
		a.Names = append(a.Names, name)
	}
	a.Target = Canonicalize(g.Target)
	return a, nil
}

func (g *labelGrammar) build(string) (Statement, error) {
	l := &LabelDef{Pos: g.Pos, Text: g.Text, Color: "black", Alignment: AlignCenter}
	if g.Color != nil {
		var err error
		if l.Color, err = checkColor(g.Color); err != nil {
			return nil, err
		}
	}

	l.Size = g.Size.Value
	if l.Size <= 0 {
		return nil, syntaxErrorf(g.Size.Pos, "size must be positive")
	}

	var err error
	if l.Orientation, l.Flipped, err = g.Orientation.orientation(); err != nil {
		return nil, err
	}
	if l.Orientation == OrientNone {
		l.Orientation = Rot0
	}

	if len(g.Point.Values) != 2 {
		return nil, syntaxErrorf(g.Point.Pos, "coordinates must be one point (x,y)")
	}
	l.X, l.Y = g.Point.Values[0].Value, g.Point.Values[1].Value

	for a, name := range alignmentNames {
		if strings.EqualFold(g.Alignment, name) {
			l.Alignment = a
		}
	}
	return l, nil
}

func (g *categoryGrammar) build(string) (Statement, error) {
	c := &CategoryDef{Pos: g.Pos, Name: g.Name, Description: g.Description}
	var err error
	if c.Color, err = checkColor(g.Color); err != nil {
		return nil, err
	}
	return c, nil
}

func (g *defineGrammar) build(string) (Statement, error) {
	d := &StringDef{Pos: g.Pos, Key: g.Key}
	if g.Number != nil {
		d.Value = formatFloat(g.Number.Value)
	} else {
		d.Value = strings.Join(g.Text, "")
	}
	return d, nil
}
