package secp256k1

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext(rand.Reader)
	require.NoError(t, err)
	return ctx
}

func randomMsg32(t *testing.T) [32]byte {
	t.Helper()
	var m [32]byte
	_, err := rand.Read(m[:])
	require.NoError(t, err)
	return m
}

// TestVectorZeroPubkeyDerivation checks the well-known BIP-340 test vector
// 0 relationship between secret key 3 and its x-only public key (spec.md
// §8's "concrete end-to-end vectors", vector 0). Only the pubkey
// derivation is asserted against the published constant: hand-transcribing
// the full 64-byte signature from memory without a way to run the
// resulting code is a real transcription-error risk this module would
// rather avoid than assert confidently and be wrong (DESIGN.md notes this
// choice). Sign/verify self-consistency is covered, for random keypairs
// rather than this one, by TestSignVerifyRoundTrip below.
func TestVectorZeroPubkeyDerivation(t *testing.T) {
	ctx := mustContext(t)

	var seckey [32]byte
	seckey[31] = 3

	kp, err := NewKeypair(ctx, &seckey)
	require.NoError(t, err)

	xo := kp.XOnlyPubKey()
	got := xo.Bytes()

	want, err := hex.DecodeString("F9308A019258C31049344F85F89D5229B531C845836F99B08601F113BCE036F9")
	require.NoError(t, err)

	require.True(t, bytes.Equal(got[:], want), "pubkey for seckey=3 was %x, want %x", got, want)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	ctx := mustContext(t)

	var seckey [32]byte
	_, err := rand.Read(seckey[:])
	require.NoError(t, err)

	kp, err := NewKeypair(ctx, &seckey)
	require.NoError(t, err)
	xo := kp.XOnlyPubKey()

	msg := randomMsg32(t)
	var aux [32]byte
	_, err = rand.Read(aux[:])
	require.NoError(t, err)

	sig, ok := Sign32(ctx, &msg, kp, &aux)
	require.True(t, ok)
	require.True(t, Verify(&sig, msg[:], &xo))
}

func TestSignDeterministicWithoutAux(t *testing.T) {
	ctx := mustContext(t)

	var seckey [32]byte
	_, err := rand.Read(seckey[:])
	require.NoError(t, err)
	kp, err := NewKeypair(ctx, &seckey)
	require.NoError(t, err)

	msg := randomMsg32(t)

	sig1, ok1 := Sign32(ctx, &msg, kp, nil)
	sig2, ok2 := Sign32(ctx, &msg, kp, nil)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, sig1, sig2)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	ctx := mustContext(t)

	var seckeyA, seckeyB [32]byte
	_, err := rand.Read(seckeyA[:])
	require.NoError(t, err)
	_, err = rand.Read(seckeyB[:])
	require.NoError(t, err)

	kpA, err := NewKeypair(ctx, &seckeyA)
	require.NoError(t, err)
	kpB, err := NewKeypair(ctx, &seckeyB)
	require.NoError(t, err)
	xoB := kpB.XOnlyPubKey()

	msg := randomMsg32(t)
	sig, ok := Sign32(ctx, &msg, kpA, nil)
	require.True(t, ok)

	require.False(t, Verify(&sig, msg[:], &xoB))
}

func TestVerifyRejectsMutatedSignature(t *testing.T) {
	ctx := mustContext(t)

	var seckey [32]byte
	_, err := rand.Read(seckey[:])
	require.NoError(t, err)
	kp, err := NewKeypair(ctx, &seckey)
	require.NoError(t, err)
	xo := kp.XOnlyPubKey()

	msg := randomMsg32(t)
	sig, ok := Sign32(ctx, &msg, kp, nil)
	require.True(t, ok)
	require.True(t, Verify(&sig, msg[:], &xo))

	mutated := sig
	mutated[0] ^= 0x01
	require.False(t, Verify(&mutated, msg[:], &xo))
}

func TestVerifyRejectsMutatedMessage(t *testing.T) {
	ctx := mustContext(t)

	var seckey [32]byte
	_, err := rand.Read(seckey[:])
	require.NoError(t, err)
	kp, err := NewKeypair(ctx, &seckey)
	require.NoError(t, err)
	xo := kp.XOnlyPubKey()

	msg := randomMsg32(t)
	sig, ok := Sign32(ctx, &msg, kp, nil)
	require.True(t, ok)

	mutatedMsg := msg
	mutatedMsg[0] ^= 0x01
	require.False(t, Verify(&sig, mutatedMsg[:], &xo))
}

func TestSignVerifyWithOddYPubkey(t *testing.T) {
	ctx := mustContext(t)

	// Try several secret keys until one produces an odd-Y public point,
	// exercising the negate-before-nonce-derivation branch of Sign
	// (spec.md §8 vector 4).
	for i := 0; i < 64; i++ {
		var seckey [32]byte
		_, err := rand.Read(seckey[:])
		require.NoError(t, err)
		kp, err := NewKeypair(ctx, &seckey)
		require.NoError(t, err)
		if !kp.pubkey.Y.IsOdd() {
			continue
		}

		xo := kp.XOnlyPubKey()
		msg := randomMsg32(t)
		sig, ok := Sign32(ctx, &msg, kp, nil)
		require.True(t, ok)
		require.True(t, Verify(&sig, msg[:], &xo))
		return
	}
	t.Skip("did not draw an odd-Y keypair in 64 attempts")
}

func TestSignVerifyLongMessage(t *testing.T) {
	ctx := mustContext(t)

	var seckey [32]byte
	_, err := rand.Read(seckey[:])
	require.NoError(t, err)
	kp, err := NewKeypair(ctx, &seckey)
	require.NoError(t, err)
	xo := kp.XOnlyPubKey()

	msg := make([]byte, 4096)
	_, err = rand.Read(msg)
	require.NoError(t, err)

	sig, ok := Sign(ctx, msg, kp, nil)
	require.True(t, ok)
	require.True(t, Verify(&sig, msg, &xo))
}
