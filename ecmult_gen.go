package secp256k1

// ecmultGenLadder computes r = k*G via a fixed-shape double-and-add ladder:
// every bit iteration unconditionally computes both the doubled-only and
// doubled-then-added accumulator via DoubleGe/AddGeCT and selects between
// them with Jacobian.CMov, so neither the sequence of group operations nor
// the field arithmetic those operations perform (field.go's Mul/Sqr are
// genuinely constant-time limb code, not math/big) depends on k's bits.
// This is the constant-time contract spec.md §4.4 asks of ecmult_gen.
//
// Precondition: k != 0. Per spec.md §4.6's own zero-nonce handling (and the
// C source's cmov-to-one-then-zero-the-output pattern), callers substitute
// a fixed nonzero placeholder for a zero nonce before reaching this point
// and discard the result afterward; ecmultGenLadder itself does not special
// case k == 0.
func ecmultGenLadder(r *Jacobian, k *Scalar) {
	acc := Jacobian{Infinity: 1}
	kb := k.Bytes()
	for i := 0; i < 256; i++ {
		var doubled Jacobian
		DoubleGe(&doubled, &acc)

		var added Jacobian
		AddGeCT(&added, &doubled, &genAffine)

		byteIdx := i / 8
		bitIdx := uint(7 - (i % 8))
		bit := (kb[byteIdx] >> bitIdx) & 1

		acc = doubled
		acc.CMov(&added, bit == 1)
	}
	*r = acc
}

// EcmultGen computes r = k*G using the context's precomputed blinding: the
// ladder is run over (k - blind), and the result corrected by the
// precomputed point blind*G, so the scalar value that ever touches the
// ladder is never the caller's k itself (spec.md §4.4, §5).
func (c *Context) EcmultGen(r *Jacobian, k *Scalar) error {
	if !c.built {
		return ErrGeneratorTableNotBuilt
	}
	var negBlind, kb Scalar
	negBlind.Negate(&c.blind)
	kb.Add(k, &negBlind)

	var unblinded Jacobian
	ecmultGenLadder(&unblinded, &kb)

	var bp Affine
	GeSetGejVar(&bp, &c.blindPoint)
	AddGeVar(r, &unblinded, &bp)

	kb.Clear()
	negBlind.Clear()
	return nil
}
