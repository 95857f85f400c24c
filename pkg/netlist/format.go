package netlist

import (
	"sort"
	"strconv"
	"strings"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coordString(list []float64) string {
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}

// quote renders s as a string literal of the input language.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func writeColor(sb *strings.Builder, color string) {
	if color != "" {
		sb.WriteString(":")
		sb.WriteString(color)
	}
}

func writeDescription(sb *strings.Builder, desc string) {
	if desc != "" {
		sb.WriteString(" ")
		sb.WriteString(quote(desc))
	}
}

// writeCoords writes named coordinate groups, the unnamed group first and
// the rest in name order.
func writeCoords(sb *strings.Builder, coords Coords) {
	names := make([]string, 0, len(coords))
	for name := range coords {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return CompareNames(names[i], names[j]) < 0 })
	for _, name := range names {
		for _, list := range coords[name] {
			sb.WriteString(" ")
			sb.WriteString(name)
			sb.WriteString("@")
			sb.WriteString(coordString(list))
		}
	}
}

func writeOrientation(sb *strings.Builder, o Orientation, flipped bool) {
	if o == OrientNone {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(o.String())
	if flipped {
		sb.WriteString(", flip")
	}
}

func (t *TypeDef) String() string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(t.Name)
	writeColor(&sb, t.Color)
	for _, p := range t.Ports {
		sb.WriteString(" ")
		sb.WriteString(p.String())
	}
	writeCoords(&sb, t.Coords)
	writeDescription(&sb, t.Description)
	// Always written so that a later doc-url define cannot change it.
	sb.WriteString(" doc ")
	sb.WriteString(quote(t.DocURL))
	sb.WriteString(";")
	return sb.String()
}

func (s *SignalDef) String() string {
	var sb strings.Builder
	sb.WriteString("signal ")
	sb.WriteString(s.Name)
	writeColor(&sb, s.Color)
	writeDescription(&sb, s.Description)
	sb.WriteString(";")
	return sb.String()
}

func (c *CellDef) String() string {
	var sb strings.Builder
	sb.WriteString("cell ")
	sb.WriteString(c.Name)
	sb.WriteString(":")
	sb.WriteString(c.Type)
	writeOrientation(&sb, c.Orientation, c.Flipped)
	writeCoords(&sb, c.Coords)
	if c.Spare {
		sb.WriteString(" spare")
	}
	if c.Virtual {
		sb.WriteString(" virtual")
	}
	if c.Comp {
		sb.WriteString(" comp")
	}
	if c.Trivial {
		sb.WriteString(" trivial")
	}
	if c.Category != "" {
		sb.WriteString(" -> ")
		sb.WriteString(c.Category)
	}
	writeDescription(&sb, c.Description)
	sb.WriteString(";")
	return sb.String()
}

func (w *WireDef) String() string {
	var sb strings.Builder
	sb.WriteString("wire ")
	sb.WriteString(w.Name)
	writeColor(&sb, w.Signal)
	if w.Unchecked {
		sb.WriteString(" unchecked")
	}
	for _, c := range w.Sources {
		sb.WriteString(" ")
		sb.WriteString(c.String())
	}
	// Bidirectional ports are listed once, as sources.
	sources := make(map[ConnKey]bool, len(w.Sources))
	for _, c := range w.Sources {
		sources[c.Key()] = true
	}
	arrow := false
	for _, c := range w.Drains {
		if sources[c.Key()] {
			continue
		}
		if !arrow {
			sb.WriteString(" ->")
			arrow = true
		}
		sb.WriteString(" ")
		sb.WriteString(c.String())
	}
	for _, list := range w.Coords {
		sb.WriteString(" @")
		sb.WriteString(coordString(list))
	}
	writeDescription(&sb, w.Description)
	sb.WriteString(";")
	return sb.String()
}

func (a *AliasDef) String() string {
	var sb strings.Builder
	sb.WriteString("alias ")
	sb.WriteString(a.Kind.String())
	for _, n := range a.Names {
		sb.WriteString(" ")
		sb.WriteString(n)
	}
	sb.WriteString(" -> ")
	sb.WriteString(a.Target)
	sb.WriteString(";")
	return sb.String()
}

func (l *LabelDef) String() string {
	var sb strings.Builder
	sb.WriteString("label ")
	sb.WriteString(quote(l.Text))
	writeColor(&sb, l.Color)
	sb.WriteString(" ")
	sb.WriteString(formatFloat(l.Size))
	writeOrientation(&sb, l.Orientation, l.Flipped)
	sb.WriteString(" @")
	sb.WriteString(coordString([]float64{l.X, l.Y}))
	sb.WriteString(" ")
	sb.WriteString(l.Alignment.String())
	sb.WriteString(";")
	return sb.String()
}

func (c *CategoryDef) String() string {
	var sb strings.Builder
	sb.WriteString("category ")
	sb.WriteString(c.Name)
	writeColor(&sb, c.Color)
	writeDescription(&sb, c.Description)
	sb.WriteString(";")
	return sb.String()
}

func (s *StringDef) String() string {
	return "define " + s.Key + " " + quote(s.Value) + ";"
}

func aliasStatement(kind AliasKind, target string, names []string) string {
	sorted := append([]string(nil), names...)
	sort.Slice(sorted, func(i, j int) bool { return CompareNames(sorted[i], sorted[j]) < 0 })
	a := &AliasDef{Kind: kind, Target: target, Names: sorted}
	return a.String()
}
