package netlist

import "strings"

// Statement is one parsed statement of the input language. The set of
// implementations is closed: *TypeDef, *SignalDef, *CellDef, *WireDef,
// *AliasDef, *LabelDef, *CategoryDef and *StringDef.
type Statement interface {
	statement()
	Position() Position
	String() string
}

// PortDirection is the electrical role of a port.
type PortDirection int

const (
	Input PortDirection = iota
	Output
	Tristate
	Bidir
	OutputLow
	OutputHigh
	NotConnected
)

var portDirectionNames = map[PortDirection]string{
	Input:        "in",
	Output:       "out",
	Tristate:     "tri",
	Bidir:        "inout",
	OutputLow:    "out0",
	OutputHigh:   "out1",
	NotConnected: "nc",
}

func (d PortDirection) String() string {
	if s, ok := portDirectionNames[d]; ok {
		return s
	}
	return "?"
}

// IsDriver reports whether a port of this direction may appear in a wire's
// source list.
func (d PortDirection) IsDriver() bool {
	switch d {
	case Output, Tristate, Bidir, OutputLow, OutputHigh:
		return true
	}
	return false
}

// ParsePortDirection maps a direction keyword (in, out, tri, inout, out0,
// out1, nc) to its PortDirection.
func ParsePortDirection(s string) (PortDirection, bool) {
	s = strings.ToLower(s)
	for d, name := range portDirectionNames {
		if name == s {
			return d, true
		}
	}
	return 0, false
}

// Orientation is the rotation of a cell or label. OrientNone means the
// input did not specify one.
type Orientation int

const (
	OrientNone Orientation = iota
	Rot0
	Rot90
	Rot180
	Rot270
)

var orientationNames = map[Orientation]string{
	Rot0:   "rot0",
	Rot90:  "rot90",
	Rot180: "rot180",
	Rot270: "rot270",
}

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return ""
}

// Alignment anchors a label's text relative to its point.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignTopLeft
	AlignTopCenter
	AlignTopRight
	AlignCenterLeft
	AlignCenterRight
	AlignBottomLeft
	AlignBottomCenter
	AlignBottomRight
)

var alignmentNames = map[Alignment]string{
	AlignCenter:       "center",
	AlignTopLeft:      "top-left",
	AlignTopCenter:    "top-center",
	AlignTopRight:     "top-right",
	AlignCenterLeft:   "center-left",
	AlignCenterRight:  "center-right",
	AlignBottomLeft:   "bottom-left",
	AlignBottomCenter: "bottom-center",
	AlignBottomRight:  "bottom-right",
}

func (a Alignment) String() string {
	return alignmentNames[a]
}

// PortDefinition is a named, directioned port of a type.
type PortDefinition struct {
	Pos       Position
	Name      string
	Direction PortDirection
}

func (p *PortDefinition) String() string {
	return p.Name + ":" + p.Direction.String()
}

// ConnKey identifies a cell port independently of where it was written.
type ConnKey struct {
	Cell string
	Port string
}

func (k ConnKey) String() string { return k.Cell + "." + k.Port }

// WireConnection is a cell.port reference inside a wire statement.
type WireConnection struct {
	Pos  Position
	Cell string
	Port string
}

// Key returns the map key of the connection.
func (c WireConnection) Key() ConnKey { return ConnKey{Cell: c.Cell, Port: c.Port} }

func (c WireConnection) String() string { return c.Cell + "." + c.Port }

// CompareConnections orders connections by cell, then port, ignoring bars.
func CompareConnections(a, b WireConnection) int {
	if c := CompareNames(a.Cell, b.Cell); c != 0 {
		return c
	}
	return CompareNames(a.Port, b.Port)
}

// Coords maps a port name (or "" for the entity itself) to the coordinate
// lists given for it.
type Coords map[string][][]float64

// Add appends one coordinate list under name.
func (c Coords) Add(name string, list []float64) {
	c[name] = append(c[name], list)
}

// TypeDef declares a cell type and its ports.
type TypeDef struct {
	Pos         Position
	Name        string
	Color       string
	Ports       []*PortDefinition
	Coords      Coords
	Description string
	DocURL      string

	ports map[string]*PortDefinition
}

// NewTypeDef returns an empty type definition.
func NewTypeDef(pos Position, name string) *TypeDef {
	return &TypeDef{
		Pos:    pos,
		Name:   name,
		Coords: Coords{},
		ports:  map[string]*PortDefinition{},
	}
}

// AddPort declares a port; it fails if the name is already taken.
func (t *TypeDef) AddPort(p *PortDefinition) error {
	if t.ports == nil {
		t.ports = map[string]*PortDefinition{}
	}
	if _, ok := t.ports[p.Name]; ok {
		return semanticErrorf(p.Pos, "port name '%s' already in use", p.Name)
	}
	t.ports[p.Name] = p
	t.Ports = append(t.Ports, p)
	return nil
}

// Port looks up a port by name.
func (t *TypeDef) Port(name string) (*PortDefinition, bool) {
	p, ok := t.ports[name]
	return p, ok
}

// SignalDef declares a signal class that wires may reference.
type SignalDef struct {
	Pos         Position
	Name        string
	Color       string
	Description string
}

// CellDef is an instance of a type.
type CellDef struct {
	Pos         Position
	Name        string
	Type        string
	Orientation Orientation
	Flipped     bool
	Coords      Coords
	Spare       bool
	Virtual     bool
	Comp        bool
	Trivial     bool
	Category    string
	Description string
	Aliases     []string
}

// WireDef is an electrical node connecting source ports to drain ports.
type WireDef struct {
	Pos         Position
	Name        string
	Signal      string
	Unchecked   bool
	Sources     []WireConnection
	Drains      []WireConnection
	Coords      [][]float64
	Description string
	Aliases     []string
}

// AliasKind tells whether an alias statement names cells or wires.
type AliasKind int

const (
	AliasCell AliasKind = iota
	AliasWire
)

func (k AliasKind) String() string {
	if k == AliasWire {
		return "wire"
	}
	return "cell"
}

// AliasDef binds additional names to an existing cell or wire.
type AliasDef struct {
	Pos    Position
	Kind   AliasKind
	Target string
	Names  []string
}

// LabelDef is a free text label placed on the map.
type LabelDef struct {
	Pos         Position
	Text        string
	Color       string
	Size        float64
	Orientation Orientation
	Flipped     bool
	X, Y        float64
	Alignment   Alignment
}

// CategoryDef groups cells for presentation.
type CategoryDef struct {
	Pos         Position
	Name        string
	Color       string
	Description string
}

// StringDef sets a configuration string.
type StringDef struct {
	Pos   Position
	Key   string
	Value string
}

func (*TypeDef) statement()     {}
func (*SignalDef) statement()   {}
func (*CellDef) statement()     {}
func (*WireDef) statement()     {}
func (*AliasDef) statement()    {}
func (*LabelDef) statement()    {}
func (*CategoryDef) statement() {}
func (*StringDef) statement()   {}

func (s *TypeDef) Position() Position     { return s.Pos }
func (s *SignalDef) Position() Position   { return s.Pos }
func (s *CellDef) Position() Position     { return s.Pos }
func (s *WireDef) Position() Position     { return s.Pos }
func (s *AliasDef) Position() Position    { return s.Pos }
func (s *LabelDef) Position() Position    { return s.Pos }
func (s *CategoryDef) Position() Position { return s.Pos }
func (s *StringDef) Position() Position   { return s.Pos }
