// Package export writes validated netlists in formats other tools consume.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/nlcheck/pkg/netlist"
)

// Version is written into every exported document.
const Version = "1.0"

// Port is a port of an exported type.
type Port struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// Type is an exported cell type.
type Type struct {
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	Ports       []Port    `json:"ports"`
	Description string    `json:"description,omitempty"`
	DocURL      string    `json:"doc_url,omitempty"`
	Box         []float64 `json:"box,omitempty"`
}

// Cell is an exported cell instance.
type Cell struct {
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Orientation string              `json:"orientation,omitempty"`
	Flipped     bool                `json:"flipped,omitempty"`
	Box         []float64           `json:"box,omitempty"`
	Ports       map[string][]string `json:"ports,omitempty"`
	Flags       []string            `json:"flags,omitempty"`
	Category    string              `json:"category,omitempty"`
	Description string              `json:"description,omitempty"`
	Aliases     []string            `json:"aliases,omitempty"`
}

// Node is one cell port on a wire.
type Node struct {
	Cell string `json:"cell"`
	Port string `json:"port"`
}

// Wire is an exported wire.
type Wire struct {
	Name        string      `json:"name"`
	Signal      string      `json:"signal,omitempty"`
	Unchecked   bool        `json:"unchecked,omitempty"`
	Sources     []Node      `json:"sources"`
	Drains      []Node      `json:"drains"`
	Segments    [][]float64 `json:"segments,omitempty"`
	Description string      `json:"description,omitempty"`
	Aliases     []string    `json:"aliases,omitempty"`
}

// Named is an exported signal class or category.
type Named struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Label is an exported map label.
type Label struct {
	Text        string  `json:"text"`
	Color       string  `json:"color"`
	Size        float64 `json:"size"`
	Orientation string  `json:"orientation"`
	Flipped     bool    `json:"flipped,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Alignment   string  `json:"alignment"`
}

// Document is the JSON form of a netlist.
type Document struct {
	Version     string            `json:"version"`
	GeneratedBy string            `json:"generated_by"`
	Strings     map[string]string `json:"strings,omitempty"`
	Signals     []Named           `json:"signals"`
	Categories  []Named           `json:"categories"`
	Types       []Type            `json:"types"`
	Cells       []Cell            `json:"cells"`
	Wires       []Wire            `json:"wires"`
	Labels      []Label           `json:"labels"`
	Unconnected int               `json:"unconnected_ports"`
}

// DocLink expands the documentation URL template of a type. "%t" stands
// for the type name without bar markup.
func DocLink(t *netlist.TypeDef) string {
	return strings.ReplaceAll(t.DocURL, "%t", netlist.WithoutBars(t.Name))
}

func box(coords netlist.Coords) []float64 {
	if lists := coords[""]; len(lists) > 0 {
		return lists[0]
	}
	return nil
}

func nodes(list []netlist.WireConnection) []Node {
	out := make([]Node, 0, len(list))
	for _, c := range list {
		out = append(out, Node{Cell: c.Cell, Port: c.Port})
	}
	return out
}

// NewDocument converts a validated netlist. Every list is in display order.
func NewDocument(nl *netlist.Netlist) *Document {
	doc := &Document{
		Version:     Version,
		GeneratedBy: "nlcheck",
		Strings:     nl.Strings,
		Signals:     []Named{},
		Categories:  []Named{},
		Types:       []Type{},
		Cells:       []Cell{},
		Wires:       []Wire{},
		Labels:      []Label{},
		Unconnected: nl.Unconnected,
	}

	for _, name := range nl.SignalNames() {
		s := nl.Signals[name]
		doc.Signals = append(doc.Signals, Named{Name: s.Name, Color: s.Color, Description: s.Description})
	}
	for _, name := range nl.CategoryNames() {
		c := nl.Categories[name]
		doc.Categories = append(doc.Categories, Named{Name: c.Name, Color: c.Color, Description: c.Description})
	}

	for _, name := range nl.TypeNames() {
		t := nl.Types[name]
		out := Type{
			Name:        t.Name,
			Color:       t.Color,
			Ports:       make([]Port, 0, len(t.Ports)),
			Description: t.Description,
			DocURL:      DocLink(t),
			Box:         box(t.Coords),
		}
		for _, p := range t.Ports {
			out.Ports = append(out.Ports, Port{Name: p.Name, Direction: p.Direction.String()})
		}
		doc.Types = append(doc.Types, out)
	}

	for _, name := range nl.CellNames() {
		c := nl.Cells[name]
		out := Cell{
			Name:        c.Name,
			Type:        c.Type,
			Orientation: c.Orientation.String(),
			Flipped:     c.Flipped,
			Box:         box(c.Coords),
			Category:    c.Category,
			Description: c.Description,
			Aliases:     c.Aliases,
		}
		for _, flag := range []struct {
			set  bool
			name string
		}{{c.Spare, "spare"}, {c.Virtual, "virtual"}, {c.Comp, "comp"}, {c.Trivial, "trivial"}} {
			if flag.set {
				out.Flags = append(out.Flags, flag.name)
			}
		}
		if t, ok := nl.CellType(c.Name); ok {
			for _, p := range t.Ports {
				if w, ok := nl.WireAt(c.Name, p.Name); ok {
					if out.Ports == nil {
						out.Ports = map[string][]string{}
					}
					out.Ports[p.Name] = []string{w.Name}
				}
			}
		}
		doc.Cells = append(doc.Cells, out)
	}

	for _, name := range nl.WireNames() {
		w := nl.Wires[name]
		doc.Wires = append(doc.Wires, Wire{
			Name:        w.Name,
			Signal:      w.Signal,
			Unchecked:   w.Unchecked,
			Sources:     nodes(w.Sources),
			Drains:      nodes(w.Drains),
			Segments:    w.Coords,
			Description: w.Description,
			Aliases:     w.Aliases,
		})
	}

	for _, l := range nl.Labels {
		doc.Labels = append(doc.Labels, Label{
			Text:        l.Text,
			Color:       l.Color,
			Size:        l.Size,
			Orientation: l.Orientation.String(),
			Flipped:     l.Flipped,
			X:           l.X,
			Y:           l.Y,
			Alignment:   l.Alignment.String(),
		})
	}
	return doc
}

// JSON exports the netlist as indented JSON.
func JSON(nl *netlist.Netlist) ([]byte, error) {
	if nl == nil {
		return nil, fmt.Errorf("export: nil netlist")
	}
	return json.MarshalIndent(NewDocument(nl), "", "  ")
}
