package cidutil

import (
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"xdao.co/cesr/derivation"
	"xdao.co/cesr/prefix"
)

var alphabet = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

func derive(alg derivation.HashAlgorithm) prefix.SelfAddressing {
	return prefix.NewSelfAddressing(derivation.NewSelfAddressing(alg).Derive(alphabet))
}

func TestMultihash_RoundTrip(t *testing.T) {
	for _, code := range derivation.SelfAddressingCodes() {
		t.Run(code.Algorithm().String(), func(t *testing.T) {
			p := derive(code.Algorithm())
			mh, err := Multihash(p)
			require.NoError(t, err)
			back, err := FromMultihash(mh)
			require.NoError(t, err)
			require.True(t, back.Equal(p), "round trip mismatch: %s != %s", back, p)
		})
	}
}

func TestMultihash_MatchesMultihashSum(t *testing.T) {
	cases := map[derivation.HashAlgorithm]uint64{
		derivation.SHA2_256:   multihash.SHA2_256,
		derivation.SHA2_512:   multihash.SHA2_512,
		derivation.SHA3_256:   multihash.SHA3_256,
		derivation.SHA3_512:   multihash.SHA3_512,
		derivation.Blake3_256: multihash.BLAKE3,
		derivation.Blake2B512: multihash.BLAKE2B_MAX,
	}
	for alg, code := range cases {
		want, err := multihash.Sum(alphabet, code, -1)
		require.NoError(t, err)
		got, err := Multihash(derive(alg))
		require.NoError(t, err)
		require.Equal(t, want.B58String(), got.B58String(), alg.String())
	}
}

func TestCIDv1Raw_SHA2_256(t *testing.T) {
	const want = "bafkreiabd7bjstrz2jirifka7b5gscjlh4rkqz3h64ud3z7o5wzys67n6y"
	c, err := CIDv1Raw(derive(derivation.SHA2_256))
	require.NoError(t, err)
	require.Equal(t, want, c.String())

	back, err := FromCID(want)
	require.NoError(t, err)
	require.Equal(t, "IAR_CmU450lEUFUD4emkJKz8iqGdn9yg95-7ts4l77fY", back.String())
}

func TestMultibase(t *testing.T) {
	s, err := Multibase(derive(derivation.SHA2_256), multibase.Base64url)
	require.NoError(t, err)
	require.Equal(t, "uEiABH8KZTjnSURQVQPh6aQkrPyKoZ2f3KD3n7u2ziXvt9g", s)
}

func TestMultihash_KeyedDigestRejected(t *testing.T) {
	code, err := derivation.NewKeyedSelfAddressing(derivation.Blake2S256, []byte("k"))
	require.NoError(t, err)
	_, err = Multihash(prefix.NewSelfAddressing(code.Derive(alphabet)))
	require.Equal(t, RuleNoMultihash, derivation.RuleID(err))
	require.True(t, derivation.IsKind(err, derivation.KindMultiformat))
}

func TestFromMultihash_Errors(t *testing.T) {
	_, err := FromMultihash(multihash.Multihash{0x12})
	require.Equal(t, RuleInvalidMultihash, derivation.RuleID(err))

	sha1, err := multihash.Encode(make([]byte, 20), multihash.SHA1)
	require.NoError(t, err)
	_, err = FromMultihash(sha1)
	require.Equal(t, RuleUnknownMultihash, derivation.RuleID(err))

	short, err := multihash.Encode(make([]byte, 16), multihash.SHA2_256)
	require.NoError(t, err)
	_, err = FromMultihash(short)
	require.Equal(t, RuleDigestLength, derivation.RuleID(err))

	_, err = FromCID("not-a-cid")
	require.Equal(t, RuleInvalidCID, derivation.RuleID(err))
}
