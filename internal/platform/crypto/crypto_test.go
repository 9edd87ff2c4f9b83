package crypto_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chocolate/internal/platform/crypto"
	"chocolate/internal/platform/crypto/cryptotest"
)

func TestHashers(t *testing.T) {
	t.Run("keccak-256 of empty input", func(t *testing.T) {
		sum := crypto.Keccak{}.Hash(nil)
		assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(sum[:]))
	})

	t.Run("blake2b-256 of abc", func(t *testing.T) {
		sum := crypto.Blake2b{}.Hash([]byte("abc"))
		assert.Equal(t, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319", hex.EncodeToString(sum[:]))
	})

	t.Run("resolve by name", func(t *testing.T) {
		h, err := crypto.NewHasher("")
		require.NoError(t, err)
		assert.IsType(t, crypto.Blake2b{}, h)

		h, err = crypto.NewHasher(crypto.Keccak256)
		require.NoError(t, err)
		assert.IsType(t, crypto.Keccak{}, h)

		_, err = crypto.NewHasher("md5")
		assert.Error(t, err)
	})
}

func TestWrapMessage(t *testing.T) {
	assert.Equal(t, []byte("<Bytes>\x01\x02</Bytes>"), crypto.WrapMessage([]byte{1, 2}))
	assert.Equal(t, []byte("<Bytes></Bytes>"), crypto.WrapMessage(nil))
}

func TestSecp256k1_Recover(t *testing.T) {
	signer := cryptotest.NewSigner("alice")
	digest := crypto.Blake2b{}.Hash([]byte("challenge"))
	sig := signer.Sign(digest)
	require.Len(t, sig, crypto.SignatureSize)

	t.Run("recovers the signing key", func(t *testing.T) {
		pub, err := crypto.Secp256k1{}.Recover(sig, digest)
		require.NoError(t, err)
		assert.Equal(t, signer.PublicKey(), pub)
	})

	t.Run("accepts 27/28 recovery ids", func(t *testing.T) {
		shifted := append([]byte(nil), sig...)
		shifted[64] += 27
		pub, err := crypto.Secp256k1{}.Recover(shifted, digest)
		require.NoError(t, err)
		assert.Equal(t, signer.PublicKey(), pub)
	})

	t.Run("other digest recovers another key", func(t *testing.T) {
		pub, err := crypto.Secp256k1{}.Recover(sig, crypto.Blake2b{}.Hash([]byte("other")))
		if err == nil {
			assert.NotEqual(t, signer.PublicKey(), pub)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := crypto.Secp256k1{}.Recover(sig[:64], digest)
		assert.ErrorIs(t, err, crypto.ErrMalformedSignature)

		bad := append([]byte(nil), sig...)
		bad[64] = 5
		_, err = crypto.Secp256k1{}.Recover(bad, digest)
		assert.ErrorIs(t, err, crypto.ErrMalformedSignature)

		zero := make([]byte, crypto.SignatureSize)
		_, err = crypto.Secp256k1{}.Recover(zero, digest)
		assert.ErrorIs(t, err, crypto.ErrMalformedSignature)
	})
}

func TestDeriveAccount(t *testing.T) {
	signer := cryptotest.NewSigner("bob")
	h := crypto.Blake2b{}
	assert.Equal(t, h.Hash(signer.PublicKey()), [32]byte(signer.Account(h)))
	assert.NotEqual(t, signer.Account(h), cryptotest.NewSigner("carol").Account(h))
}
