package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrFlushed is returned when a Builder is used after Flush.
var ErrFlushed = errors.New("netlist: builder already flushed")

// Builder accumulates statements from input lines. It is the mutable
// building phase of a netlist; Flush validates the result and hands out the
// read-only Netlist.
type Builder struct {
	cfg  *Config
	sink Sink
	asm  Assembler
	pos  Position

	types      map[string]*TypeDef
	cells      map[string]*CellDef
	wires      map[string]*WireDef
	signals    map[string]*SignalDef
	categories map[string]*CategoryDef
	labels     []*LabelDef
	strings    map[string]string

	flushed bool
}

// NewBuilder creates a builder. A nil cfg means DefaultConfig and a nil sink
// discards warnings. cfg is validated and copied; an invalid configuration
// is returned as an error.
func NewBuilder(cfg *Config, sink Sink) (*Builder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = DiscardSink{}
	}
	return &Builder{
		cfg:        &c,
		sink:       sink,
		pos:        Position{Line: 1},
		types:      map[string]*TypeDef{},
		cells:      map[string]*CellDef{},
		wires:      map[string]*WireDef{},
		signals:    map[string]*SignalDef{},
		categories: map[string]*CategoryDef{},
		strings:    c.initialStrings(),
	}, nil
}

// BeginFile starts a new input file: positions restart at line 1 and carry
// name. A statement may not continue across files.
func (b *Builder) BeginFile(name string) error {
	if b.flushed {
		return ErrFlushed
	}
	if err := b.asm.Finish(); err != nil {
		return err
	}
	b.pos = Position{Filename: name, Line: 1}
	return nil
}

// WriteLine feeds one line of input (without its newline) and processes
// every statement it completes.
func (b *Builder) WriteLine(line string) error {
	if b.flushed {
		return ErrFlushed
	}
	toks, err := Tokenize(line, &b.pos)
	b.pos.Line++
	if err != nil {
		return err
	}
	b.asm.Feed(toks)

	for {
		stmt, ok := b.asm.Next()
		if !ok {
			return nil
		}
		s, err := ParseStatement(stmt, b.strings[KeyDocURL])
		if err != nil {
			return err
		}
		if s == nil {
			continue
		}
		if err := b.Add(s); err != nil {
			return err
		}
	}
}

// ReadFrom feeds every line of r as file name.
func (b *Builder) ReadFrom(r io.Reader, name string) error {
	if err := b.BeginFile(name); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if err := b.WriteLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", displayName(name), err)
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "standard input"
	}
	return name
}

// Add inserts a parsed statement into the symbol tables.
func (b *Builder) Add(stmt Statement) error {
	if b.flushed {
		return ErrFlushed
	}

	switch s := stmt.(type) {
	case *TypeDef:
		if _, ok := b.types[s.Name]; ok {
			return semanticErrorf(s.Pos, "type name '%s' already in use", s.Name)
		}
		b.types[s.Name] = s
	case *SignalDef:
		if _, ok := b.signals[s.Name]; ok {
			return semanticErrorf(s.Pos, "signal name '%s' already in use", s.Name)
		}
		b.signals[s.Name] = s
	case *CellDef:
		if _, ok := b.cells[s.Name]; ok {
			return semanticErrorf(s.Pos, "cell name '%s' already in use", s.Name)
		}
		b.cells[s.Name] = s
	case *WireDef:
		if _, ok := b.wires[s.Name]; ok {
			return semanticErrorf(s.Pos, "wire name '%s' already in use", s.Name)
		}
		b.wires[s.Name] = s
	case *CategoryDef:
		if _, ok := b.categories[s.Name]; ok {
			return semanticErrorf(s.Pos, "category name '%s' already in use", s.Name)
		}
		b.categories[s.Name] = s
	case *AliasDef:
		return b.addAlias(s)
	case *LabelDef:
		b.labels = append(b.labels, s)
	case *StringDef:
		b.strings[s.Key] = s.Value
	default:
		panic(fmt.Sprintf("netlist: unknown statement type %T", stmt))
	}
	return nil
}

func (b *Builder) addAlias(a *AliasDef) error {
	switch a.Kind {
	case AliasCell:
		cell, ok := b.cells[a.Target]
		if !ok {
			return semanticErrorf(a.Pos, "no cell '%s' defined prior to this alias definition", a.Target)
		}
		cell.Aliases = append(cell.Aliases, a.Names...)
	case AliasWire:
		wire, ok := b.wires[a.Target]
		if !ok {
			return semanticErrorf(a.Pos, "no wire '%s' defined prior to this alias definition", a.Target)
		}
		wire.Aliases = append(wire.Aliases, a.Names...)
	}
	return nil
}

// Flush ends the input, validates the netlist and returns it. The builder
// cannot be used afterwards.
func (b *Builder) Flush() (*Netlist, error) {
	if b.flushed {
		return nil, ErrFlushed
	}
	if err := b.asm.Finish(); err != nil {
		return nil, err
	}
	b.flushed = true

	nl := &Netlist{
		Types:      b.types,
		Cells:      b.cells,
		Wires:      b.wires,
		Signals:    b.signals,
		Categories: b.categories,
		Labels:     b.labels,
		Strings:    b.strings,
		Cons:       map[ConnKey]*WireDef{},
	}
	v := validator{nl: nl, limit: b.cfg.WarningLimit, sink: b.sink}
	if err := v.run(); err != nil {
		return nil, err
	}
	return nl, nil
}

// Parse reads and validates a complete netlist from r.
func Parse(r io.Reader, name string, cfg *Config, sink Sink) (*Netlist, error) {
	b, err := NewBuilder(cfg, sink)
	if err != nil {
		return nil, err
	}
	if err := b.ReadFrom(r, name); err != nil {
		return nil, err
	}
	return b.Flush()
}

// ParseString reads and validates a complete netlist held in a string.
func ParseString(input string, cfg *Config, sink Sink) (*Netlist, error) {
	return Parse(strings.NewReader(input), "", cfg, sink)
}
