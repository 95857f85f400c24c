package netlist

import (
	"strings"
	"unicode"
)

// Names may carry overline ("bar") markup for active-low signals:
//
//	~X...   bars the following characters up to the next single '~'
//	~{...}  bars the characters inside the braces
//	~~      a literal tilde, inside or outside a barred run
//
// ProcessBars rewrites such a name, emitting barOn and barOff around each
// barred run, ws for whitespace and escape[c] for characters found in escape.
func ProcessBars(name, barOn, barOff, ws string, escape map[rune]string) string {
	const (
		plain = iota
		tilde
		braced
		bracedTilde
		run
		runTilde
	)

	var sb strings.Builder
	put := func(c rune) {
		if s, ok := escape[c]; ok {
			sb.WriteString(s)
		} else if unicode.IsSpace(c) {
			sb.WriteString(ws)
		} else if !unicode.IsControl(c) {
			sb.WriteRune(c)
		}
	}

	state := plain
	for _, c := range name {
		switch state {
		case plain:
			if c == '~' {
				state = tilde
				continue
			}
			put(c)
		case tilde:
			switch c {
			case '~':
				put('~')
				state = plain
			case '{':
				sb.WriteString(barOn)
				state = braced
			default:
				sb.WriteString(barOn)
				put(c)
				state = run
			}
		case braced:
			switch c {
			case '}':
				sb.WriteString(barOff)
				state = plain
			case '~':
				state = bracedTilde
			default:
				put(c)
			}
		case bracedTilde:
			put('~')
			switch c {
			case '~':
				state = braced
			case '}':
				sb.WriteString(barOff)
				state = plain
			default:
				put(c)
				state = braced
			}
		case run:
			if c == '~' {
				state = runTilde
				continue
			}
			put(c)
		case runTilde:
			if c == '~' {
				put('~')
				state = run
				continue
			}
			sb.WriteString(barOff)
			put(c)
			state = plain
		}
	}

	switch state {
	case tilde:
		put('~')
	case bracedTilde:
		put('~')
		sb.WriteString(barOff)
	case braced, run, runTilde:
		sb.WriteString(barOff)
	}
	return sb.String()
}

var tildeEscape = map[rune]string{'~': "~~"}

// Canonicalize rewrites bar markup into the canonical ~{...} form, so that
// ~RST and ~{RST} become the same name. A barred run containing '}' cannot
// be braced; such names keep the ~X... run form.
func Canonicalize(name string) string {
	braced := ProcessBars(name, "~{", "}", " ", tildeEscape)
	if !strings.ContainsRune(name, '}') {
		return braced
	}
	want := markBars(name)
	if markBars(braced) == want {
		return braced
	}
	if run := runForm(want); markBars(run) == want {
		return run
	}
	return braced
}

// Bar markers never collide with name text: ProcessBars drops control
// characters from names.
const (
	markOn  = "\x01"
	markOff = "\x02"
)

// markBars decodes name into its text with barred runs between markOn and
// markOff.
func markBars(name string) string {
	return ProcessBars(name, markOn, markOff, " ", nil)
}

// runForm encodes marked text using ~X runs, each ended by a tilde in front
// of the next plain character.
func runForm(marked string) string {
	var sb strings.Builder
	for i, c := range marked {
		switch string(c) {
		case markOn:
			sb.WriteByte('~')
		case markOff:
			if i+len(markOff) < len(marked) {
				sb.WriteByte('~')
			}
		case "~":
			sb.WriteString("~~")
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// WithoutBars strips bar markup, keeping literal tildes.
func WithoutBars(name string) string {
	return ProcessBars(name, "", "", " ", nil)
}

// Unbar marks barred runs with a leading slash, e.g. ~{RST} becomes /RST.
func Unbar(name string) string {
	return ProcessBars(name, "/", "", " ", nil)
}

// CompareNames orders names as they read without bars. Names that differ
// only in bar markup are ordered by their raw text.
func CompareNames(a, b string) int {
	if c := strings.Compare(WithoutBars(a), WithoutBars(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
