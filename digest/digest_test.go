package digest

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var target = common.FromHex("0x1111111111111111111111111111111111111111")

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected Strategy
	}{
		{"passthrough", Passthrough},
		{"personal-prefix", PersonalPrefix},
		{"raw-keccak256", RawKeccak256},
		{"sha256", SHA256},
		{" SHA256 ", SHA256},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseStrategy(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
			assert.True(t, got.Valid())
		})
	}

	for _, bad := range []string{"", "keccak", "eip191", "sha-256"} {
		t.Run("unsupported "+bad, func(t *testing.T) {
			_, err := ParseStrategy(bad)
			assert.ErrorIs(t, err, ErrUnsupportedStrategy)
		})
	}
}

func TestStrategyString(t *testing.T) {
	for _, s := range Strategies() {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "unknown", Strategy(0).String())
	assert.False(t, Strategy(99).Valid())
}

func TestCompute(t *testing.T) {
	tests := []struct {
		strategy Strategy
		expected string
	}{
		{RawKeccak256, "0xe2c07404b8c1df4c46226425cac68c28d27a766bbddce62309f36724839b22c0"},
		{SHA256, "0x7c854a55ff3b6a65ccb68b366a6b39756d8f2994aa41c45f94627209da86806f"},
		{PersonalPrefix, "0x0d9890ce916025589019047aa7cb2484399fd2714f97c6e6f42cb587e82d4585"},
		{Passthrough, "0x1111111111111111111111111111111111111111"},
	}

	for _, test := range tests {
		t.Run(test.strategy.String(), func(t *testing.T) {
			got, err := test.strategy.Compute(target)
			require.NoError(t, err)
			assert.Equal(t, common.FromHex(test.expected), got)
			if test.strategy.Hashed() {
				assert.Len(t, got, 32)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := Strategy(42).Compute(target)
		assert.ErrorIs(t, err, ErrUnsupportedStrategy)
	})
}

func TestComputeDivergence(t *testing.T) {
	seen := map[string]Strategy{}
	for _, s := range []Strategy{PersonalPrefix, RawKeccak256, SHA256} {
		d, err := s.Compute(target)
		require.NoError(t, err)
		prev, dup := seen[string(d)]
		assert.False(t, dup, "%s collides with %s", s, prev)
		seen[string(d)] = s
	}
}

func TestPassthroughDoesNotAlias(t *testing.T) {
	msg := []byte{1, 2, 3}
	got, err := Passthrough.Compute(msg)
	require.NoError(t, err)
	got[0] = 9
	assert.Equal(t, byte(1), msg[0])
}

func TestPersonalPrefixMatchesWallet(t *testing.T) {
	for _, msg := range [][]byte{nil, target, []byte("hello world"), make([]byte, 123)} {
		got, err := PersonalPrefix.Compute(msg)
		require.NoError(t, err)
		assert.Equal(t, TextHash(msg), got)
	}
}

func TestPersonalMessage(t *testing.T) {
	assert.Equal(t, []byte("\x19Ethereum Signed Message:\n3abc"), PersonalMessage([]byte("abc")))
	assert.Equal(t, []byte("\x19Ethereum Signed Message:\n0"), PersonalMessage(nil))
	assert.Equal(t, "\x19Ethereum Signed Message:\n20", string(PersonalMessage(target)[:len(MessagePrefix)+2]))
}

func TestStrategyText(t *testing.T) {
	var s Strategy
	require.NoError(t, s.UnmarshalText([]byte("raw-keccak256")))
	assert.Equal(t, RawKeccak256, s)

	text, err := SHA256.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sha256", string(text))

	assert.ErrorIs(t, s.UnmarshalText([]byte("nope")), ErrUnsupportedStrategy)
	_, err = Strategy(0).MarshalText()
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)
}
