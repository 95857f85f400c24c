package netlist

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"RST", "RST"},
		{"~RST", "~{RST}"},
		{"~{RST}", "~{RST}"},
		{"A~B~C", "A~{B}C"},
		{"a~~b", "a~~b"},
		{"~", "~~"},
		{"~{a~b}", "~{a~~b}"},
		{"~{a~~b}", "~{a~~b}"},
		{"~{open", "~{open}"},
		{"~~{x}", "~~{x}"},
		{"~A}B", "~A}B"},
		{"~A}B~C", "~A}B~C"},
		{"x}~{y}", "x}~{y}"},
	}

	for _, tt := range tests {
		got := Canonicalize(tt.in)
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := Canonicalize(got); again != got {
			t.Errorf("Canonicalize is not idempotent on %q: got %q", got, again)
		}
	}
}

func TestCanonicalizeKeepsMeaning(t *testing.T) {
	for _, in := range []string{"~A}B", "~A}B~C", "~{a}b}", "~RST", "~{a~b}", "p}q"} {
		got := Canonicalize(in)
		if WithoutBars(got) != WithoutBars(in) {
			t.Errorf("Canonicalize(%q) = %q reads %q, want %q", in, got, WithoutBars(got), WithoutBars(in))
		}
		if Unbar(got) != Unbar(in) {
			t.Errorf("Canonicalize(%q) = %q bars %q, want %q", in, got, Unbar(got), Unbar(in))
		}
	}
}

func TestWithoutBarsAndUnbar(t *testing.T) {
	tests := []struct {
		in, plain, unbar string
	}{
		{"~{RST}", "RST", "/RST"},
		{"A~B~C", "ABC", "A/BC"},
		{"a~~b", "a~b", "a~b"},
		{"~{a~~b}", "a~b", "/a~b"},
		{"CLK", "CLK", "CLK"},
	}

	for _, tt := range tests {
		if got := WithoutBars(tt.in); got != tt.plain {
			t.Errorf("WithoutBars(%q) = %q, want %q", tt.in, got, tt.plain)
		}
		if got := Unbar(tt.in); got != tt.unbar {
			t.Errorf("Unbar(%q) = %q, want %q", tt.in, got, tt.unbar)
		}
	}
}

func TestProcessBarsEscape(t *testing.T) {
	got := ProcessBars("~{a<b} c", "<o>", "</o>", "_", map[rune]string{'<': "&lt;"})
	want := "<o>a&lt;b</o>_c"
	if got != want {
		t.Errorf("ProcessBars = %q, want %q", got, want)
	}
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"~{A}", "B", -1},
		{"B", "~{A}", 1},
		{"A", "~{A}", -1},
		{"~{A}", "~{A}", 0},
		{"u10", "u2", -1},
	}
	for _, tt := range tests {
		got := CompareNames(tt.a, tt.b)
		if sign(got) != tt.want {
			t.Errorf("CompareNames(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
