package extract

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"
)

func buildPlcPcd(cps []uint32, fcs []uint32) []byte {
	out := make([]byte, 0, len(cps)*4+len(fcs)*pcdSize)
	for _, cp := range cps {
		out = binary.LittleEndian.AppendUint32(out, cp)
	}
	for _, fc := range fcs {
		out = binary.LittleEndian.AppendUint16(out, 0)
		out = binary.LittleEndian.AppendUint32(out, fc)
		out = binary.LittleEndian.AppendUint16(out, 0)
	}
	return out
}

func TestReadPiecesCompressedAndUnicode(t *testing.T) {
	word := make([]byte, 64)
	copy(word[8:], []byte("Caf\xe9 "))
	units := utf16.Encode([]rune("Zoë"))
	for i, u := range units {
		binary.LittleEndian.PutUint16(word[32+i*2:], u)
	}

	plc := buildPlcPcd([]uint32{0, 5, 8}, []uint32{pcdCompressed | 16, 32})

	got, err := readPieces(word, plc, 8)
	if err != nil {
		t.Fatalf("readPieces: %v", err)
	}
	if got != "Café Zoë" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestReadPiecesStopsAtCcpText(t *testing.T) {
	word := []byte("Hello world, plus footnotes")
	plc := buildPlcPcd([]uint32{0, uint32(len(word))}, []uint32{pcdCompressed | 0})

	got, err := readPieces(word, plc, 11)
	if err != nil {
		t.Fatalf("readPieces: %v", err)
	}
	if got != "Hello world" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestFindPlcPcdSkipsPrc(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	clx := []byte{clxPrc, 2, 0, 0xAA, 0xBB, clxPcdt}
	clx = binary.LittleEndian.AppendUint32(clx, uint32(len(payload)))
	clx = append(clx, payload...)

	got, err := findPlcPcd(clx)
	if err != nil {
		t.Fatalf("findPlcPcd: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("unexpected payload %v", got)
	}

	if _, err := findPlcPcd([]byte{0x07}); err == nil {
		t.Fatal("expected error for unknown clx entry")
	}
}

func TestNormalizeWordText(t *testing.T) {
	in := "Title\r\x13 HYPERLINK \"https://x\" \x14Link\x15\aCell\r"
	if got := normalizeWordText(in); got != "Title\nLink\tCell" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestNormalizeWordTextNestedFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "field inside instruction",
			in:   "\x13 IF \x13 PAGE \x14 3\x15 = 1 \"x\" \x14Result\x15 tail",
			want: "Result tail",
		},
		{
			name: "field inside result",
			in:   "\x13 HYPERLINK \"u\" \x14see page \x13 PAGE \x14 4\x15 now\x15.",
			want: "see page  4 now.",
		},
		{
			name: "field without separator",
			in:   "Before \x13 TOC \\o \x15After",
			want: "Before After",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeWordText(tt.in); got != tt.want {
				t.Fatalf("normalizeWordText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractDOCRejectsNonOLE(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.doc")
	if err := os.WriteFile(path, []byte("not a compound file"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := extractDOC(path); err == nil {
		t.Fatal("expected error for non-OLE file")
	}
}
