package extract

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Destinations whose content is metadata rather than document text.
var rtfSkipDestinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true,
	"pict": true, "object": true, "header": true, "footer": true,
	"headerl": true, "headerr": true, "footerl": true, "footerr": true,
	"listtable": true, "listoverridetable": true, "rsidtbl": true,
	"generator": true, "xmlnstbl": true, "themedata": true, "colorschememapping": true,
	"latentstyles": true, "datastore": true, "filetbl": true, "revtbl": true,
}

var errNotRTF = errors.New("not an rtf document")

func extractRTF(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := rtfToText(string(data))
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

type rtfGroup struct {
	skip   bool
	ucSkip int
}

// rtfToText strips RTF control words and groups, keeping paragraph breaks.
// \'hh escapes are decoded as cp1252, \uN as UTF-16 code units.
func rtfToText(src string) (string, error) {
	if !strings.HasPrefix(strings.TrimSpace(src), `{\rtf`) {
		return "", errNotRTF
	}

	var (
		out       strings.Builder
		stack     []rtfGroup
		cur       = rtfGroup{ucSkip: 1}
		pending   []uint16
		skipChars int
		decoder   = charmap.Windows1252.NewDecoder()
	)
	flushUnicode := func() {
		if len(pending) == 0 {
			return
		}
		out.WriteString(string(utf16.Decode(pending)))
		pending = pending[:0]
	}
	emit := func(s string) {
		if cur.skip {
			return
		}
		flushUnicode()
		out.WriteString(s)
	}

	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch ch {
		case '{':
			stack = append(stack, cur)
			skipChars = 0
		case '}':
			flushUnicode()
			if len(stack) == 0 {
				return strings.TrimSpace(out.String()), nil
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			skipChars = 0
		case '\\':
			if i+1 >= len(src) {
				break
			}
			next := src[i+1]
			switch {
			case next == '\\' || next == '{' || next == '}':
				emit(string(next))
				i++
			case next == '\'':
				if i+3 < len(src) {
					if b, err := strconv.ParseUint(src[i+2:i+4], 16, 8); err == nil {
						if skipChars > 0 {
							skipChars--
						} else if decoded, err := decoder.Bytes([]byte{byte(b)}); err == nil {
							emit(string(decoded))
						}
					}
				}
				i += 3
			case next == '*':
				cur.skip = true
				i++
			case next == '~':
				emit(" ")
				i++
			case next == '-' || next == '_':
				i++
			case next == '\n' || next == '\r':
				emit("\n")
				i++
			case isASCIILetter(next):
				j := i + 1
				for j < len(src) && isASCIILetter(src[j]) {
					j++
				}
				word := src[i+1 : j]
				k := j
				if k < len(src) && (src[k] == '-' || isDigit(src[k])) {
					k++
					for k < len(src) && isDigit(src[k]) {
						k++
					}
				}
				param, hasParam := 0, k > j
				if hasParam {
					param, _ = strconv.Atoi(src[j:k])
				}
				if k < len(src) && src[k] == ' ' {
					k++
				}
				i = k - 1

				switch {
				case rtfSkipDestinations[word]:
					cur.skip = true
				case word == "par" || word == "line" || word == "sect" || word == "page":
					emit("\n")
				case word == "tab":
					emit("\t")
				case word == "uc" && hasParam:
					cur.ucSkip = param
				case word == "u" && hasParam:
					if cur.skip {
						break
					}
					if param < 0 {
						param += 65536
					}
					pending = append(pending, uint16(param))
					skipChars = cur.ucSkip
				case word == "emdash":
					emit("—")
				case word == "endash":
					emit("–")
				case word == "bullet":
					emit("•")
				case word == "lquote":
					emit("‘")
				case word == "rquote":
					emit("’")
				case word == "ldblquote":
					emit("“")
				case word == "rdblquote":
					emit("”")
				}
			default:
				i++
			}
		case '\r', '\n':
			// raw line breaks are not significant in RTF
		default:
			if skipChars > 0 {
				skipChars--
				continue
			}
			if ch >= 0x80 {
				if decoded, err := decoder.Bytes([]byte{ch}); err == nil {
					emit(string(decoded))
				}
				continue
			}
			emit(string(ch))
		}
	}
	flushUnicode()
	return strings.TrimSpace(out.String()), nil
}

func isASCIILetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
