package secp256k1

// Ecmult computes r = a*p + b*G, variable-time in both scalars (spec.md
// §4.4: this is the verification-side double-scalar multiply, where
// neither the public key point p nor the scalars are secret). It walks
// both scalars' bits together in a single combined double-and-add pass.
//
// spec.md's contract only fixes the operation's result, not an internal
// windowing strategy; this module uses plain binary double-and-add rather
// than a windowed-NAF expansion (DESIGN.md notes the simplification — wNAF
// is a performance optimization over this same math, not a correctness
// requirement).
func Ecmult(r *Jacobian, p *Jacobian, a, b *Scalar) {
	var pAffine Affine
	GeSetGejVar(&pAffine, p)

	aBytes := a.Bytes()
	bBytes := b.Bytes()

	acc := Jacobian{Infinity: 1}
	for i := 0; i < 256; i++ {
		DoubleVar(&acc, &acc)

		byteIdx := i / 8
		bitIdx := uint(7 - (i % 8))

		if (aBytes[byteIdx]>>bitIdx)&1 == 1 {
			AddGeVar(&acc, &acc, &pAffine)
		}
		if (bBytes[byteIdx]>>bitIdx)&1 == 1 {
			AddGeVar(&acc, &acc, &genAffine)
		}
	}
	*r = acc
}
