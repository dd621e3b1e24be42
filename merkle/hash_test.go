package merkle

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHash(t *testing.T) {
	const display = "000000000003ba27aa200b1cecaad478d2b00432346c3f1f3986da1afd33e506"
	h, err := ParseHash(display)
	require.NoError(t, err)
	require.Equal(t, display, h.String())
	require.Equal(t, byte(0x06), h[0])
	require.Equal(t, byte(0x00), h[31])
	require.Equal(t, "06e533fd1ada86391f3f6c343204b0d278d4aaec1c0b20aa27ba030000000000", h.Hex())

	withPrefix, err := ParseHash("0x" + display)
	require.NoError(t, err)
	require.Equal(t, h, withPrefix)

	cases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "short", input: display[:62]},
		{name: "long", input: display + "00"},
		{name: "not hex", input: "zz" + display[2:]},
		{name: "odd", input: display[:63]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHash(tc.input)
			require.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestHashFromBytes(t *testing.T) {
	b := make([]byte, HashSize)
	b[0] = 1
	h, err := HashFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, byte(1), h[0])

	d, err := HashFromDisplayBytes(b)
	require.NoError(t, err)
	require.Equal(t, byte(1), d[31])
	require.Equal(t, h, d.Reverse())

	_, err = HashFromBytes(b[:31])
	require.ErrorIs(t, err, ErrInvalidHashLength)
	_, err = HashFromDisplayBytes(append(b, 0))
	require.ErrorIs(t, err, ErrInvalidHashLength)
}

func TestReverse(t *testing.T) {
	h := DoubleSHA256([]byte("abc"))
	require.NotEqual(t, h, h.Reverse())
	require.Equal(t, h, h.Reverse().Reverse())
	require.True(t, Hash{}.IsZero())
	require.False(t, h.IsZero())
}

func TestDoubleSHA256(t *testing.T) {
	// hash of the genesis block header
	header := "0100000000000000000000000000000000000000000000000000000000000000" +
		"000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa" +
		"4b1e5e4a29ab5f49ffff001d1dac2b7c"
	raw, err := hex.DecodeString(header)
	require.NoError(t, err)
	require.Len(t, raw, 80)
	require.Equal(t,
		"000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f",
		DoubleSHA256(raw).String())
	require.Equal(t, DoubleSHA256(raw), DoubleSHA256(raw[:40], raw[40:]))
}

func TestHashJSON(t *testing.T) {
	h := MustParseHash("e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d")
	b, err := json.Marshal(h)
	require.NoError(t, err)
	require.Equal(t, `"e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d"`, string(b))

	var decoded Hash
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, h, decoded)

	require.Error(t, json.Unmarshal([]byte(`"1234"`), &decoded))
	require.Panics(t, func() { MustParseHash("1234") })
}
