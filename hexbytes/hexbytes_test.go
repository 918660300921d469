package hexbytes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"with prefix", "0x0a0b", []byte{0x0a, 0x0b}},
		{"without prefix", "0a0b", []byte{0x0a, 0x0b}},
		{"upper-case prefix and digits", "0XABCD", []byte{0xab, 0xcd}},
		{"mixed case", "0xAbCd", []byte{0xab, 0xcd}},
		{"empty", "", []byte{}},
		{"bare prefix", "0x", []byte{}},
		{"leading zero bytes", "0x000001", []byte{0x00, 0x00, 0x01}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
			assert.Len(t, got, len(StripPrefix(test.input))/2)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"odd length", "0xabc"},
		{"odd length no prefix", "abc"},
		{"non-hex", "0xzz"},
		{"non-hex no prefix", "gg"},
		{"double prefix", "0x0x12"},
		{"whitespace", "0x12 4"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Decode(test.input)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
			assert.Nil(t, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("bytes to hex to bytes", func(t *testing.T) {
		for n := 0; n <= 64; n++ {
			b := make([]byte, n)
			for i := range b {
				b[i] = byte(i*37 + n)
			}
			got, err := Decode(Encode(b))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(b, got), "length %d", n)

			got, err = Decode(Encode0x(b))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(b, got), "length %d with prefix", n)
		}
	})

	t.Run("hex to bytes to hex", func(t *testing.T) {
		for _, s := range []string{"0xDEADbeef", "deadbeef", "0x", "00ff"} {
			b, err := Decode(s)
			require.NoError(t, err)
			norm, err := Normalize(s)
			require.NoError(t, err)
			assert.Equal(t, norm, Encode(b))
		}
	})
}

func TestEncode(t *testing.T) {
	b := []byte{0x00, 0xab, 0xCD}
	assert.Equal(t, "00abcd", Encode(b))
	assert.Equal(t, "0x00abcd", Encode0x(b))
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "0x", Encode0x(nil))
}

func TestNormalizeInvalid(t *testing.T) {
	_, err := Normalize("0xabc")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}
