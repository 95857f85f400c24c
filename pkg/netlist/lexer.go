package netlist

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits one input line into tokens. pos supplies the file name,
// the line number and the absolute offset of the first character; the
// offset is advanced past the line (and its newline) before returning.
//
// Everything after a '#' is a comment. Statements are not assembled here, so
// a line may end in the middle of a statement.
func Tokenize(line string, pos *Position) ([]Token, error) {
	base := *pos
	pos.Offset += len(line) + 1

	runes := []rune(line)
	offsets := make([]int, len(runes)+1)
	for i, r := range runes {
		offsets[i+1] = offsets[i] + utf8.RuneLen(r)
	}
	at := func(i int) Position {
		return Position{
			Filename: base.Filename,
			Offset:   base.Offset + offsets[i],
			Line:     base.Line,
			Column:   i + 1,
		}
	}

	var toks []Token
	emit := func(kind TokenKind, i int) {
		toks = append(toks, Token{Kind: kind, Pos: at(i)})
	}

	for i := 0; i < len(runes); {
		c := runes[i]

		switch c {
		case '#':
			return toks, nil
		case ',':
			emit(TokenComma, i)
			i++
			continue
		case '+':
			emit(TokenPlus, i)
			i++
			continue
		case '-':
			if i+1 < len(runes) && runes[i+1] == '>' {
				emit(TokenArrow, i)
				i += 2
				continue
			}
			emit(TokenMinus, i)
			i++
			continue
		case ':':
			emit(TokenColon, i)
			i++
			continue
		case ';':
			emit(TokenEOT, i)
			i++
			continue
		case '.':
			emit(TokenDot, i)
			i++
			continue
		case '@':
			emit(TokenAt, i)
			i++
			continue
		}

		if c == '\t' || unicode.Is(unicode.Zs, c) {
			i++
			continue
		}

		if c == '"' {
			text, next, ok := scanString(runes, i)
			if !ok {
				return nil, lexErrorf(at(i), "unterminated string literal")
			}
			toks = append(toks, Token{Kind: TokenString, Pos: at(i), Text: text})
			i = next
			continue
		}

		if isNameStart(c) {
			start := i
			text, next, isName := scanNameOrValue(runes, i)
			i = next
			if isName {
				toks = append(toks, Token{Kind: TokenName, Pos: at(start), Text: text})
				continue
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, lexErrorf(at(start), "invalid floating point number %q", text)
			}
			toks = append(toks, Token{Kind: TokenValue, Pos: at(start), Text: text, Value: v})
			continue
		}

		return nil, lexErrorf(at(i), "unknown input character %q", c)
	}

	return toks, nil
}

// scanString reads a quoted string starting at the opening quote and
// returns its decoded text and the index after the closing quote.
func scanString(runes []rune, i int) (string, int, bool) {
	var sb strings.Builder
	escaped := false
	for i++; i < len(runes); i++ {
		c := runes[i]
		if escaped {
			switch c {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(c)
			}
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			return sb.String(), i + 1, true
		default:
			sb.WriteRune(c)
		}
	}
	return "", i, false
}

// scanNameOrValue reads a run of name characters. A run becomes a name as
// soon as it contains anything but digits; a '.' seen before that point turns
// it into a number, which then ends at the first non-numeric character.
func scanNameOrValue(runes []rune, i int) (string, int, bool) {
	var sb strings.Builder
	isName, isValue := false, false
	for ; i < len(runes) && isNameRune(runes[i]); i++ {
		c := runes[i]
		if c == '.' {
			if isName {
				break
			}
			isValue = true
		}
		if isValue && c != '.' && !unicode.IsDigit(c) {
			break
		}
		sb.WriteRune(c)
		if !isValue && !unicode.IsDigit(c) {
			isName = true
		}
	}
	return sb.String(), i, isName
}

func isNameStart(c rune) bool {
	if unicode.IsLetter(c) || unicode.IsDigit(c) {
		return true
	}
	switch c {
	case '_', '~', '{', '}', '[', ']':
		return true
	}
	return false
}

func isNameRune(c rune) bool {
	return isNameStart(c) || c == '-' || c == '.'
}
