package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Descriptions maps a parameter name to its one-line description.
type Descriptions map[string]string

// ExtractDescriptions scans doc for "name: description" lines.
//
// Each newline-terminated line contributes at most one entry: the first colon
// directly preceded by an identifier (letters, digits, underscore) splits the
// line into the identifier and the trimmed remainder. Matches are not limited
// to any section of the text, and a later line overrides an earlier one with
// the same identifier. A final line without a trailing newline is ignored.
func ExtractDescriptions(doc string) Descriptions {
	return extract(doc, false)
}

func extract(doc string, trailing bool) Descriptions {
	d := make(Descriptions)
	for doc != "" {
		var line string
		i := strings.IndexByte(doc, '\n')
		if i < 0 {
			if !trailing {
				break
			}
			line, doc = doc, ""
		} else {
			line, doc = doc[:i], doc[i+1:]
		}

		if name, desc, ok := parseLine(line); ok {
			d[name] = desc
		}
	}
	return d
}

// parseLine finds the first "ident:" in line.
func parseLine(line string) (name, desc string, ok bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != ':' {
			continue
		}

		start := i
		for start > 0 {
			r, size := utf8.DecodeLastRuneInString(line[:start])
			if !isIdentRune(r) {
				break
			}
			start -= size
		}
		if start == i {
			continue
		}

		return line[start:i], strings.TrimSpace(line[i+1:]), true
	}
	return "", "", false
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
