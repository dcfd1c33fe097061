package extract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/charmap"
)

// Word 97-2003 binary layout offsets inside the FIB.
const (
	fibIdent        = 0xA5EC
	fibFlagsOffset  = 0x000A
	fibWhichTblStm  = 0x0200
	fibCcpText      = 0x004C
	fibFcClx        = 0x01A2
	fibLcbClx       = 0x01A6
	pcdCompressed   = 0x40000000
	clxPrc          = 0x01
	clxPcdt         = 0x02
	pcdSize         = 8
	minFibLength    = fibLcbClx + 4
	maxPieceEntries = 1 << 20
)

var errNotWordDocument = errors.New("not a word 97-2003 document")

// extractDOC reads the main document text of a legacy .doc file by walking
// the piece table stored in the table stream.
func extractDOC(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streams, err := readStreams(f, "WordDocument", "0Table", "1Table")
	if err != nil {
		return nil, err
	}
	word := streams["WordDocument"]
	if len(word) < minFibLength || binary.LittleEndian.Uint16(word) != fibIdent {
		return nil, errNotWordDocument
	}

	tableName := "0Table"
	if binary.LittleEndian.Uint16(word[fibFlagsOffset:])&fibWhichTblStm != 0 {
		tableName = "1Table"
	}
	table, ok := streams[tableName]
	if !ok {
		return nil, fmt.Errorf("missing %s stream", tableName)
	}

	ccpText := binary.LittleEndian.Uint32(word[fibCcpText:])
	fcClx := binary.LittleEndian.Uint32(word[fibFcClx:])
	lcbClx := binary.LittleEndian.Uint32(word[fibLcbClx:])
	if uint64(fcClx)+uint64(lcbClx) > uint64(len(table)) {
		return nil, errors.New("piece table out of range")
	}

	plcPcd, err := findPlcPcd(table[fcClx : fcClx+lcbClx])
	if err != nil {
		return nil, err
	}
	text, err := readPieces(word, plcPcd, ccpText)
	if err != nil {
		return nil, err
	}
	return []byte(normalizeWordText(text)), nil
}

func readStreams(ra io.ReaderAt, names ...string) (map[string][]byte, error) {
	reader, err := mscfb.New(ra)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	out := make(map[string][]byte)
	for entry, err := reader.Next(); err == nil; entry, err = reader.Next() {
		if !wanted[entry.Name] {
			continue
		}
		data, readErr := io.ReadAll(entry)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name, readErr)
		}
		out[entry.Name] = data
	}
	if _, ok := out["WordDocument"]; !ok {
		return nil, errNotWordDocument
	}
	return out, nil
}

// findPlcPcd skips Prc entries in the Clx and returns the PlcPcd payload.
func findPlcPcd(clx []byte) ([]byte, error) {
	for i := 0; i < len(clx); {
		switch clx[i] {
		case clxPrc:
			if i+3 > len(clx) {
				return nil, errors.New("truncated prc")
			}
			size := int(int16(binary.LittleEndian.Uint16(clx[i+1:])))
			if size < 0 {
				return nil, errors.New("invalid prc size")
			}
			i += 3 + size
		case clxPcdt:
			if i+5 > len(clx) {
				return nil, errors.New("truncated pcdt")
			}
			lcb := int(binary.LittleEndian.Uint32(clx[i+1:]))
			start := i + 5
			if start+lcb > len(clx) {
				return nil, errors.New("pcdt out of range")
			}
			return clx[start : start+lcb], nil
		default:
			return nil, fmt.Errorf("unexpected clx entry 0x%02x", clx[i])
		}
	}
	return nil, errors.New("pcdt not found")
}

// readPieces concatenates the first ccpText characters described by plcPcd.
func readPieces(word, plcPcd []byte, ccpText uint32) (string, error) {
	// PlcPcd holds n+1 CPs (4 bytes each) followed by n PCDs (8 bytes each).
	n := (len(plcPcd) - 4) / (4 + pcdSize)
	if n <= 0 || n > maxPieceEntries {
		return "", errors.New("empty piece table")
	}
	cp := func(i int) uint32 { return binary.LittleEndian.Uint32(plcPcd[i*4:]) }

	var sb strings.Builder
	decoder := charmap.Windows1252.NewDecoder()
	for i := 0; i < n; i++ {
		start, end := cp(i), cp(i+1)
		if start >= ccpText {
			break
		}
		if end > ccpText {
			end = ccpText
		}
		if end <= start {
			continue
		}
		count := int(end - start)

		pcd := plcPcd[(n+1)*4+i*pcdSize:]
		fc := binary.LittleEndian.Uint32(pcd[2:])
		if fc&pcdCompressed != 0 {
			offset := int((fc &^ pcdCompressed) / 2)
			if offset+count > len(word) {
				return "", errors.New("piece out of range")
			}
			decoded, err := decoder.Bytes(word[offset : offset+count])
			if err != nil {
				return "", err
			}
			sb.Write(decoded)
			continue
		}

		offset := int(fc)
		if offset+count*2 > len(word) {
			return "", errors.New("piece out of range")
		}
		units := make([]uint16, count)
		if err := binary.Read(bytes.NewReader(word[offset:offset+count*2]), binary.LittleEndian, units); err != nil {
			return "", err
		}
		sb.WriteString(string(utf16.Decode(units)))
	}
	return sb.String(), nil
}

// normalizeWordText maps Word control characters to plain text. Fields run
// 0x13 instruction 0x14 result 0x15 and nest; instructions are dropped at
// every level, results kept.
func normalizeWordText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	// One entry per open field: whether its separator has been seen.
	var fields []bool
	inInstruction := func() bool {
		for _, sep := range fields {
			if !sep {
				return true
			}
		}
		return false
	}
	for _, r := range s {
		switch r {
		case 0x13:
			fields = append(fields, false)
			continue
		case 0x14:
			if len(fields) > 0 {
				fields[len(fields)-1] = true
			}
			continue
		case 0x15:
			if len(fields) > 0 {
				fields = fields[:len(fields)-1]
			}
			continue
		}
		if inInstruction() {
			continue
		}
		switch r {
		case '\r', '\v', '\f':
			b.WriteRune('\n')
		case '\a':
			b.WriteRune('\t')
		case 0x01, 0x08:
			// embedded object anchors
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
