package secp256k1

// zeroMask is the fixed 32-byte mask XORed into the secret key when no
// aux-randomness is supplied to Sign (original_source/schnorr_standalone.c's
// nonce_function_bip340; spec.md §4.6). It is the "BIP0340/aux" tagged hash
// of 32 zero bytes, so a nil auxRand32 signs the same as 32 zero bytes of
// aux randomness.
var zeroMask = [32]byte{
	0x54, 0xF1, 0x69, 0xCF, 0xC9, 0xE2, 0xE5, 0x72,
	0x74, 0x80, 0x44, 0x1F, 0x90, 0xBA, 0x25, 0xC4,
	0x88, 0xF4, 0x61, 0xC7, 0x0B, 0x5E, 0xA5, 0xDC,
	0xAA, 0xF7, 0xAF, 0x69, 0x27, 0x0A, 0xA5, 0x14,
}

// nonceFunctionBIP340 derives the 32-byte nonce for a signature: the
// secret key is masked (by a tagged hash of the aux randomness, or by
// zeroMask when none is supplied), then tagged-hashed together with the
// x-only public key and the message (spec.md §4.6, step 3).
func nonceFunctionBIP340(msg []byte, key32, pubkey32 *[32]byte, auxRand32 *[32]byte) [32]byte {
	var maskedKey [32]byte
	if auxRand32 != nil {
		var h Sha256
		h.InitializeAuxTag()
		h.Write(auxRand32[:])
		auxHash := h.Finalize()
		for i := range maskedKey {
			maskedKey[i] = auxHash[i] ^ key32[i]
		}
	} else {
		for i := range maskedKey {
			maskedKey[i] = key32[i] ^ zeroMask[i]
		}
	}

	var h Sha256
	h.InitializeNonceTag()
	h.Write(maskedKey[:])
	h.Write(pubkey32[:])
	h.Write(msg)
	return h.Finalize()
}

// schnorrChallenge computes e = tagged_hash("BIP0340/challenge", rx||pk||msg)
// mod n (spec.md §4.6, step 7). The hash output is always < 2^256 and is
// reduced mod n by Scalar.SetBytes; BIP-340 does not require it be < n
// before reduction.
func schnorrChallenge(rx32, pubkey32 *[32]byte, msg []byte) Scalar {
	var h Sha256
	h.InitializeChallengeTag()
	h.Write(rx32[:])
	h.Write(pubkey32[:])
	h.Write(msg)
	sum := h.Finalize()

	var e Scalar
	e.SetBytes(&sum)
	return e
}

// Sign produces a 64-byte BIP-340 Schnorr signature over msg (of any
// length — BIP-340 itself signs 32-byte message hashes; Sign32 below
// enforces that narrower convention). auxRand32 may be nil, matching the
// C API's NULL-able aux_rand32 pointer (SPEC_FULL.md §6, resolution 3).
// Reports ok=false (with a zeroed signature) when ctx is not built, or on
// the negligible-probability event that nonce derivation yields a zero
// scalar.
func Sign(ctx *Context, msg []byte, kp *Keypair, auxRand32 *[32]byte) (sig [64]byte, ok bool) {
	sk := kp.secret
	pk := kp.pubkey

	var negSk Scalar
	negSk.Negate(&sk)
	sk.CMov(&negSk, pk.Y.IsOdd())

	seckeyBytes := sk.Bytes()
	pkx := pk.X
	pkx.NormalizeVar()
	pkXBytes := pkx.Bytes()

	nonce32 := nonceFunctionBIP340(msg, &seckeyBytes, &pkXBytes, auxRand32)

	var k Scalar
	k.SetBytes(&nonce32)
	ok = !k.IsZero()
	var one Scalar = ScalarOne
	k.CMov(&one, !ok)

	var rj Jacobian
	if err := ctx.EcmultGen(&rj, &k); err != nil {
		seckeyBytes = [32]byte{}
		sk.Clear()
		k.Clear()
		return sig, false
	}

	var r Affine
	GeSetGejVar(&r, &rj)
	r.Y.NormalizeVar()

	var negK Scalar
	negK.Negate(&k)
	k.CMov(&negK, r.Y.IsOdd())
	r.X.NormalizeVar()

	rxBytes := r.X.Bytes()
	copy(sig[0:32], rxBytes[:])

	e := schnorrChallenge(&rxBytes, &pkXBytes, msg)
	var eTimesSk Scalar
	eTimesSk.Mul(&e, &sk)
	var s Scalar
	s.Add(&eTimesSk, &k)
	sBytes := s.Bytes()
	copy(sig[32:64], sBytes[:])

	if !ok {
		sig = [64]byte{}
	}

	seckeyBytes = [32]byte{}
	k.Clear()
	sk.Clear()
	eTimesSk.Clear()
	s.Clear()
	negSk.Clear()
	negK.Clear()

	return sig, ok
}

// Sign32 signs a 32-byte message hash, the conventional BIP-340 usage.
func Sign32(ctx *Context, msg32 *[32]byte, kp *Keypair, auxRand32 *[32]byte) ([64]byte, bool) {
	return Sign(ctx, msg32[:], kp, auxRand32)
}

// Verify checks a 64-byte BIP-340 signature over msg against pubkey
// (spec.md §4.6, steps 8-12). Variable-time: verification never handles
// secret data.
func Verify(sig *[64]byte, msg []byte, pubkey *XOnlyPubKey) bool {
	var rxBytes [32]byte
	copy(rxBytes[:], sig[0:32])
	var rx FieldElement
	if !rx.SetBytesLimit(&rxBytes) {
		return false
	}

	var sBytes [32]byte
	copy(sBytes[:], sig[32:64])
	var s Scalar
	if s.SetBytes(&sBytes) {
		return false
	}

	pkXBytes := pubkey.Bytes()
	e := schnorrChallenge(&rxBytes, &pkXBytes, msg)
	var negE Scalar
	negE.Negate(&e)

	pkAffine := pubkey.affineEven()
	var pkJ Jacobian
	GejSetGe(&pkJ, &pkAffine)

	var rj Jacobian
	Ecmult(&rj, &pkJ, &negE, &s)

	var r Affine
	GeSetGejVar(&r, &rj)
	if r.Infinity {
		return false
	}
	r.Y.NormalizeVar()
	if r.Y.IsOdd() {
		return false
	}
	r.X.NormalizeVar()

	return Equal(&r.X, &rx)
}

// VerifyErr behaves like Verify but reports ErrInvalidSignature instead of a
// bare bool, for callers (e.g. cmd/schnorrsig) that want a message to show
// rather than a plain yes/no. Verify itself stays boolean-only, matching
// spec.md §7's verification contract; VerifyErr wraps it rather than
// replacing it.
func VerifyErr(sig *[64]byte, msg []byte, pubkey *XOnlyPubKey) error {
	if !Verify(sig, msg, pubkey) {
		return ErrInvalidSignature
	}
	return nil
}
