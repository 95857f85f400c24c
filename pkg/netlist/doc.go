// Package netlist reads netlist descriptions and checks their connectivity.
//
// A netlist is written as semicolon-terminated statements that declare cell
// types with directioned ports, cells instantiating them, wires connecting
// driver ports to input ports, and presentation data (signal classes,
// categories, labels, configuration strings).
//
// # Overview
//
// Input is processed in two phases:
//  1. Building: lines are fed to a Builder. Each line is tokenized,
//     tokens are assembled into statements (which may span lines), and
//     every statement is parsed and entered into its namespace at once.
//  2. Validated: Builder.Flush checks the complete netlist and returns a
//     read-only Netlist with a connection table mapping every connected
//     cell port to its wire.
//
// Problems are reported as *Error values carrying a Position and an
// ErrorKind. Processing stops at the first error. Unconnected input ports
// are not errors; they are reported through a Sink.
//
// # Usage
//
//	cfg := netlist.DefaultConfig()
//	sink := netlist.NewSlogSink(slog.Default())
//
//	b, err := netlist.NewBuilder(cfg, sink)
//	if err != nil {
//		return err
//	}
//	for _, name := range files {
//		f, _ := os.Open(name)
//		if err := b.ReadFrom(f, name); err != nil {
//			return err
//		}
//		f.Close()
//	}
//	nl, err := b.Flush()
//
// # Language
//
//	type NAND:red a b y:out @0,0,10,10 "2-input nand" doc "http://x/%t";
//	signal clk:yellow;
//	category Logic:blue;
//	cell u1:NAND rot90, flip @5,5,15,15 spare -> Logic;
//	wire n1:clk u1.y -> u2.a u3.a @0,0,5,0;
//	alias cell nand1 -> u1;
//	label "core" 2 @100,100 top-left;
//	define map-url "http://map/";
//
// Port directions are in, out, tri, inout, out0, out1 and nc. A wire may
// have several drivers only if they are tri-state or bidirectional, all
// pull-downs (out0), all pull-ups (out1), or outputs of inverters sharing
// one input wire. The unchecked flag lifts the restriction on plain
// outputs. Bidirectional sources are also drains of their wire.
//
// # Bars
//
// Names may carry overline markup: ~RST and ~{RST} both denote RST with a
// bar and are stored as ~{RST}; ~~ is a literal tilde. Names are compared
// and sorted as they read without bars.
package netlist
