package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qstripper/pkg/charset"
)

func TestTranslate_QL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   byte
		want rune
	}{
		{"ascii letter", 'A', 'A'},
		{"space", ' ', ' '},
		{"tab", 0x09, '\t'},
		{"backtick is pound", 0x60, '£'},
		{"copyright", 127, '©'},
		{"a umlaut", 128, 'ä'},
		{"oe ligature", 139, 'œ'},
		{"OE ligature", 171, 'Œ'},
		{"alpha", 172, 'α'},
		{"mu", 176, 'μ'},
		{"inverted question", 180, '¿'},
		{"euro", 181, '€'},
		{"section", 182, '§'},
		{"divide", 187, '÷'},
		{"above table passes through", 188, rune(188)},
		{"high byte passes through", 255, rune(255)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, charset.Translate(testCase.in, charset.QL))
		})
	}
}

func TestTranslate_PC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   byte
		want rune
	}{
		{"ascii letter", 'z', 'z'},
		{"backtick stays backtick", 0x60, '`'},
		{"tab stays control", 0x09, '\t'},
		{"DEL stays control", 0x7F, 0x7F},
		{"C cedilla", 0x80, 'Ç'},
		{"pound", 0x9C, '£'},
		{"box drawing", 0xC4, '─'},
		{"alpha", 0xE0, 'α'},
		{"beta sharp s", 0xE1, 'ß'},
		{"plus minus", 0xF1, '±'},
		{"nbsp", 0xFF, '\u00a0'},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, charset.Translate(testCase.in, charset.PC))
		})
	}
}

func TestTranslate_TotalAndPure(t *testing.T) {
	t.Parallel()

	for _, dialect := range []charset.Dialect{charset.QL, charset.PC} {
		for b := range 256 {
			first := charset.Translate(byte(b), dialect)
			second := charset.Translate(byte(b), dialect)
			require.Equal(t, first, second, "dialect %s byte %d", dialect, b)
			require.NotEqual(t, rune(-1), first)
		}
	}
}

func TestTranslate_UnknownDialectIsIdentity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rune(0x60), charset.Translate(0x60, charset.Dialect(9)))
	assert.Equal(t, rune(200), charset.Translate(200, charset.Dialect(9)))
}

func TestTranslateBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "£5 café", charset.TranslateBytes([]byte{0x60, '5', ' ', 'c', 'a', 'f', 131}, charset.QL))
	assert.Equal(t, "£5", charset.TranslateBytes([]byte{0x9C, '5'}, charset.PC))
	assert.Empty(t, charset.TranslateBytes(nil, charset.QL))
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	d, err := charset.ParseDialect("QL")
	require.NoError(t, err)
	assert.Equal(t, charset.QL, d)

	d, err = charset.ParseDialect("pc")
	require.NoError(t, err)
	assert.Equal(t, charset.PC, d)

	_, err = charset.ParseDialect("mac")
	require.Error(t, err)
}

func TestDialect_ByteOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint16(0x0014), charset.QL.ByteOrder().Uint16([]byte{0x00, 0x14}))
	assert.Equal(t, uint16(0x0014), charset.PC.ByteOrder().Uint16([]byte{0x14, 0x00}))
	assert.Equal(t, "ql", charset.QL.String())
	assert.Equal(t, "pc", charset.PC.String())
	assert.False(t, charset.Dialect(7).IsValid())
}
