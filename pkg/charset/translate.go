package charset

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// QL character set range that differs from ASCII/Latin-1.
const (
	qlTableFirst = 127
	qlTableLast  = 187
)

// qlPound is the code point Quill repurposes for the pound sterling sign.
const qlPound = 0x60

// qlTable maps QL codes 127..187 to Unicode.
//
//nolint:gochecknoglobals // Read-only lookup table.
var qlTable = [qlTableLast - qlTableFirst + 1]rune{
	0x00A9, // 127 ©
	0x00E4, // 128 ä
	0x00E3, // 129 ã
	0x00E5, // 130 å
	0x00E9, // 131 é
	0x00F6, // 132 ö
	0x00F5, // 133 õ
	0x00F8, // 134 ø
	0x00FC, // 135 ü
	0x00E7, // 136 ç
	0x00F1, // 137 ñ
	0x00E6, // 138 æ
	0x0153, // 139 œ
	0x00E1, // 140 á
	0x00E0, // 141 à
	0x00E2, // 142 â
	0x00EB, // 143 ë
	0x00E8, // 144 è
	0x00EA, // 145 ê
	0x00EF, // 146 ï
	0x00ED, // 147 í
	0x00EC, // 148 ì
	0x00EE, // 149 î
	0x00F3, // 150 ó
	0x00F2, // 151 ò
	0x00F4, // 152 ô
	0x00FA, // 153 ú
	0x00F9, // 154 ù
	0x00FB, // 155 û
	0x00DF, // 156 ß
	0x00A2, // 157 ¢
	0x00A5, // 158 ¥
	0x0060, // 159 `
	0x00C4, // 160 Ä
	0x00C3, // 161 Ã
	0x00C5, // 162 Å
	0x00C9, // 163 É
	0x00D6, // 164 Ö
	0x00D5, // 165 Õ
	0x00D8, // 166 Ø
	0x00DC, // 167 Ü
	0x00C7, // 168 Ç
	0x00D1, // 169 Ñ
	0x00C6, // 170 Æ
	0x0152, // 171 Œ
	0x03B1, // 172 α
	0x03B4, // 173 δ
	0x0398, // 174 Θ
	0x03BB, // 175 λ
	0x03BC, // 176 μ
	0x03C6, // 177 φ
	0x03A6, // 178 Φ
	0x00A1, // 179 ¡
	0x00BF, // 180 ¿
	0x20AC, // 181 €
	0x00A7, // 182 §
	0x00A4, // 183 ¤
	0x00AB, // 184 «
	0x00BB, // 185 »
	0x00B0, // 186 °
	0x00F7, // 187 ÷
}

// Translate maps one raw byte of a Quill file to a Unicode code point.
//
// Translate never fails: bytes outside the translated ranges pass through as
// their Latin-1 code point. An unknown dialect is treated as identity.
func Translate(b byte, d Dialect) rune {
	switch d {
	case QL:
		return translateQL(b)
	case PC:
		return translatePC(b)
	default:
		return rune(b)
	}
}

func translateQL(b byte) rune {
	if b == qlPound {
		return '£'
	}
	if b < qlTableFirst || b > qlTableLast {
		return rune(b)
	}
	return qlTable[b-qlTableFirst]
}

func translatePC(b byte) rune {
	// Code page 437 assigns glyphs to the C0 range, but Quill uses those bytes as
	// control codes, so they stay control characters.
	if b < 0x20 || b == 0x7F {
		return rune(b)
	}
	return charmap.CodePage437.DecodeByte(b)
}

// TranslateBytes translates a whole span.
func TranslateBytes(data []byte, d Dialect) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(Translate(b, d))
	}
	return sb.String()
}
