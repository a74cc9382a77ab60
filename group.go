package secp256k1

// Affine is a point on y^2 = x^3 + 7 in affine coordinates. Infinity is the
// point at infinity (the group identity); X/Y are meaningless when set.
type Affine struct {
	X, Y     FieldElement
	Infinity bool
}

// Jacobian is a point in Jacobian projective coordinates: the affine point
// is (X/Z^2, Y/Z^3). Infinity is kept as an explicit 0/1 machine word
// rather than a bool so constant-time code (ecmult_gen's ladder) can select
// it with the same branch-free CMov pattern used for the limbs, matching
// original_source/schnorr_standalone.c's explicit `infinity` struct field.
type Jacobian struct {
	X, Y, Z  FieldElement
	Infinity uint64
}

// genX, genY are the BIP-340 generator point G's coordinates (spec.md §6).
var (
	genXBytes = [32]byte{
		0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac,
		0x55, 0xa0, 0x62, 0x95, 0xce, 0x87, 0x0b, 0x07,
		0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28, 0xd9,
		0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98,
	}
	genYBytes = [32]byte{
		0x48, 0x3a, 0xda, 0x77, 0x26, 0xa3, 0xc4, 0x65,
		0x5d, 0xa4, 0xfb, 0xfc, 0x0e, 0x11, 0x08, 0xa8,
		0xfd, 0x17, 0xb4, 0x48, 0xa6, 0x85, 0x54, 0x19,
		0x9c, 0x47, 0xd0, 0x8f, 0xfb, 0x10, 0xd4, 0xb8,
	}
	genAffine Affine
)

func init() {
	genAffine.X.SetBytesMod(&genXBytes)
	genAffine.Y.SetBytesMod(&genYBytes)
	genAffine.Infinity = false
}

// SetXY sets r to the affine point (x, y) directly, without an on-curve
// check (the caller is asserting it, e.g. when reading a trusted table).
func (r *Affine) SetXY(x, y *FieldElement) {
	r.X = *x
	r.Y = *y
	r.Infinity = false
}

// SetXOVar decodes an x-only coordinate: it solves y^2 = x^3 + 7 for y and,
// if a root exists, selects whichever root has the requested parity.
// Reports false if x is not on the curve. Variable-time in x (x-only
// public keys are never secret, spec.md §4.3).
func (r *Affine) SetXOVar(x *FieldElement, odd bool) bool {
	var x2, x3, c, seven FieldElement
	x2.Sqr(x)
	x3.Mul(&x2, x)
	seven.SetInt(7)
	c.Add(&x3, &seven)

	var y FieldElement
	if !y.Sqrt(&c) {
		return false
	}
	y.NormalizeVar()
	if y.IsOdd() != odd {
		y.Negate(&y)
		y.NormalizeVar()
	}
	r.X = *x
	r.Y = y
	r.Infinity = false
	return true
}

// ToStorageBytes encodes a normalized affine point as the opaque 64-byte
// layout spec.md §6 describes for XOnlyPubKey (32-byte X || 32-byte Y,
// each canonical big-endian). original_source/schnorr_standalone.c instead
// packs two 52-bit limbs per 64-bit storage word; since field.go's byte
// encoding (Bytes/SetBytesMod) already round-trips through math/big,
// the plain 32||32 encoding carries the same "opaque fixed 64 bytes"
// contract with one less representation to keep in sync.
func (a *Affine) ToStorageBytes() [64]byte {
	var out [64]byte
	xb := a.X.Bytes()
	yb := a.Y.Bytes()
	copy(out[0:32], xb[:])
	copy(out[32:64], yb[:])
	return out
}

// FromStorageBytes decodes the layout ToStorageBytes produces.
func (a *Affine) FromStorageBytes(b *[64]byte) {
	var xb, yb [32]byte
	copy(xb[:], b[0:32])
	copy(yb[:], b[32:64])
	a.X.SetBytesMod(&xb)
	a.Y.SetBytesMod(&yb)
	a.Infinity = false
}

// GejSetGe lifts an affine point into Jacobian coordinates with Z=1.
func GejSetGe(r *Jacobian, a *Affine) {
	r.X = a.X
	r.Y = a.Y
	r.Z = FieldOne
	if a.Infinity {
		r.Infinity = 1
	} else {
		r.Infinity = 0
	}
}

// GeSetGejVar converts a Jacobian point to affine, variable-time (it calls
// FieldElement.InvVar). Used whenever the point being converted is public,
// which in this module's only constant-time caller (ecmult_gen) is true by
// construction: the C source's sign_internal declassifies the nonce point
// r = k*G immediately after this exact conversion, since r is part of the
// public signature (spec.md's sign algorithm step 6).
func GeSetGejVar(r *Affine, a *Jacobian) {
	if a.Infinity != 0 {
		r.Infinity = true
		return
	}
	var zinv, zinv2, zinv3 FieldElement
	zinv.InvVar(&a.Z)
	zinv2.Sqr(&zinv)
	zinv3.Mul(&zinv2, &zinv)
	r.X.Mul(&a.X, &zinv2)
	r.Y.Mul(&a.Y, &zinv3)
	r.Infinity = false
}

// CMov sets r = a if flag, leaving r unchanged otherwise. Every limb and the
// Infinity word are selected through uint64 masks (FieldElement.CMov or a
// direct mask select); the mask itself comes from b64(flag), and
// FieldElement.CMov copies its magnitude/normal bookkeeping under an
// if on flag.
func (r *Jacobian) CMov(a *Jacobian, flag bool) {
	r.X.CMov(&a.X, flag)
	r.Y.CMov(&a.Y, flag)
	r.Z.CMov(&a.Z, flag)
	mask := b64(flag)
	r.Infinity = (r.Infinity &^ mask) | (a.Infinity & mask)
}

// DoubleVar sets r = 2*a in Jacobian coordinates (the "dbl-2009-l" formula
// for curves with a=0, which secp256k1 is). Variable-time: this,
// AddGeVar and AddZinvVar below are exactly the stub routines spec.md §9 calls out
// as a defect in original_source/schnorr_standalone.c to be filled in, not
// design intent; there is no stub body to port, so this is a from-scratch
// implementation of the standard libsecp256k1 Jacobian-doubling identity.
func DoubleVar(r, a *Jacobian) {
	if a.Infinity != 0 || a.Y.NormalizesToZeroVar() {
		r.Infinity = 1
		return
	}

	var A, B, C FieldElement
	A.Sqr(&a.X)
	B.Sqr(&a.Y)
	C.Sqr(&B)

	var xb, xbsq, negA, negC, sum, D FieldElement
	xb.Add(&a.X, &B)
	xbsq.Sqr(&xb)
	negA.Negate(&A)
	negC.Negate(&C)
	sum.Add(&xbsq, &negA)
	sum.Add(&sum, &negC)
	D.MulSmall(&sum, 2)

	var E, F FieldElement
	E.MulSmall(&A, 3)
	F.Sqr(&E)

	var twoD, negTwoD, X3 FieldElement
	twoD.MulSmall(&D, 2)
	negTwoD.Negate(&twoD)
	X3.Add(&F, &negTwoD)

	var negX3, dMinusX3, eTimes, eightC, negEightC, Y3 FieldElement
	negX3.Negate(&X3)
	dMinusX3.Add(&D, &negX3)
	eTimes.Mul(&E, &dMinusX3)
	eightC.MulSmall(&C, 8)
	negEightC.Negate(&eightC)
	Y3.Add(&eTimes, &negEightC)

	var y1z1, Z3 FieldElement
	y1z1.Mul(&a.Y, &a.Z)
	Z3.MulSmall(&y1z1, 2)

	r.X, r.Y, r.Z = X3, Y3, Z3
	r.Infinity = 0
}

// DoubleGe sets r = 2*a in Jacobian coordinates, branch-free: it runs
// DoubleVar's "dbl-2009-l" formula unconditionally and copies a.Infinity
// straight into r.Infinity instead of branching on it. This is safe because
// a.Infinity == 1 implies a.X == a.Y == a.Z == 0 (the zero value this
// module's Jacobian{Infinity: 1} literal, and ecmult_gen's ladder, always
// start from), and the formula maps that all-zero input to an all-zero
// output on its own — doubling the identity stays the identity without any
// special case. secp256k1 has prime order, so no point other than the
// identity has Y == 0, which is the only other input this formula treats
// specially (DoubleVar's NormalizesToZeroVar check).
func DoubleGe(r, a *Jacobian) {
	var A, B, C FieldElement
	A.Sqr(&a.X)
	B.Sqr(&a.Y)
	C.Sqr(&B)

	var xb, xbsq, negA, negC, sum, D FieldElement
	xb.Add(&a.X, &B)
	xbsq.Sqr(&xb)
	negA.Negate(&A)
	negC.Negate(&C)
	sum.Add(&xbsq, &negA)
	sum.Add(&sum, &negC)
	D.MulSmall(&sum, 2)

	var E, F FieldElement
	E.MulSmall(&A, 3)
	F.Sqr(&E)

	var twoD, negTwoD, X3 FieldElement
	twoD.MulSmall(&D, 2)
	negTwoD.Negate(&twoD)
	X3.Add(&F, &negTwoD)

	var negX3, dMinusX3, eTimes, eightC, negEightC, Y3 FieldElement
	negX3.Negate(&X3)
	dMinusX3.Add(&D, &negX3)
	eTimes.Mul(&E, &dMinusX3)
	eightC.MulSmall(&C, 8)
	negEightC.Negate(&eightC)
	Y3.Add(&eTimes, &negEightC)

	var y1z1, Z3 FieldElement
	y1z1.Mul(&a.Y, &a.Z)
	Z3.MulSmall(&y1z1, 2)

	r.X, r.Y, r.Z = X3, Y3, Z3
	r.Infinity = a.Infinity
}

// AddGeCT sets r = a + b (Jacobian + affine mixed addition), branch-free in
// a, for the one shape ecmult_gen's ladder needs: b fixed and never
// infinity (the ladder only ever calls this with b = G). It runs
// AddGeVar's "madd-2007-bl" formula unconditionally, which degenerates to
// an all-zero result when a is the identity (a.Z == 0 makes the formula's
// h and its slope term both vanish the same way a genuine a == -b
// collision would) — CMov then corrects exactly that one case back to b
// itself. The a == b and a == -b collisions AddGeVar's own branches handle
// are left unhandled here: over a 256-bit ladder on a blinded scalar they
// occur with the same negligible probability the C reference accepts for
// its own constant-time gej_add_ge.
func AddGeCT(r *Jacobian, a *Jacobian, b *Affine) {
	var z1z1, u2, z1cubed, s2 FieldElement
	z1z1.Sqr(&a.Z)
	u2.Mul(&b.X, &z1z1)
	z1cubed.Mul(&z1z1, &a.Z)
	s2.Mul(&b.Y, &z1cubed)

	var h, negX1 FieldElement
	negX1.Negate(&a.X)
	h.Add(&u2, &negX1)

	var negY1, sMinusY, r2 FieldElement
	negY1.Negate(&a.Y)
	sMinusY.Add(&s2, &negY1)
	r2.MulSmall(&sMinusY, 2)

	var hh, i, j, v FieldElement
	hh.Sqr(&h)
	i.MulSmall(&hh, 4)
	j.Mul(&h, &i)
	v.Mul(&a.X, &i)

	var r2sq, negJ, twoV, negTwoV, X3 FieldElement
	r2sq.Sqr(&r2)
	negJ.Negate(&j)
	twoV.MulSmall(&v, 2)
	negTwoV.Negate(&twoV)
	X3.Add(&r2sq, &negJ)
	X3.Add(&X3, &negTwoV)

	var negX3, vMinusX3, r2TimesVm, y1j, twoY1J, negTwoY1J, Y3 FieldElement
	negX3.Negate(&X3)
	vMinusX3.Add(&v, &negX3)
	r2TimesVm.Mul(&r2, &vMinusX3)
	y1j.Mul(&a.Y, &j)
	twoY1J.MulSmall(&y1j, 2)
	negTwoY1J.Negate(&twoY1J)
	Y3.Add(&r2TimesVm, &negTwoY1J)

	var z1PlusH, z1PlusHsq, negZ1Z1, negHH, Z3 FieldElement
	z1PlusH.Add(&a.Z, &h)
	z1PlusHsq.Sqr(&z1PlusH)
	negZ1Z1.Negate(&z1z1)
	negHH.Negate(&hh)
	Z3.Add(&z1PlusHsq, &negZ1Z1)
	Z3.Add(&Z3, &negHH)

	r.X, r.Y, r.Z = X3, Y3, Z3
	r.Infinity = 0

	wasInf := a.Infinity != 0
	r.X.CMov(&b.X, wasInf)
	r.Y.CMov(&b.Y, wasInf)
	r.Z.CMov(&FieldOne, wasInf)
}

// AddGeVar sets r = a + b (Jacobian + affine mixed addition), via the
// standard "madd-2007-bl" formula. See DoubleVar's doc comment: this is
// one of spec.md §9's stub routines, implemented from scratch here.
func AddGeVar(r *Jacobian, a *Jacobian, b *Affine) {
	if a.Infinity != 0 {
		GejSetGe(r, b)
		return
	}
	if b.Infinity {
		*r = *a
		return
	}

	var z1z1, u2, z1cubed, s2 FieldElement
	z1z1.Sqr(&a.Z)
	u2.Mul(&b.X, &z1z1)
	z1cubed.Mul(&z1z1, &a.Z)
	s2.Mul(&b.Y, &z1cubed)

	var h, negX1 FieldElement
	negX1.Negate(&a.X)
	h.Add(&u2, &negX1)

	var negY1, sMinusY, r2 FieldElement
	negY1.Negate(&a.Y)
	sMinusY.Add(&s2, &negY1)
	r2.MulSmall(&sMinusY, 2)

	if h.NormalizesToZeroVar() {
		if r2.NormalizesToZeroVar() {
			DoubleVar(r, a)
			return
		}
		r.Infinity = 1
		return
	}

	var hh, i, j, v FieldElement
	hh.Sqr(&h)
	i.MulSmall(&hh, 4)
	j.Mul(&h, &i)
	v.Mul(&a.X, &i)

	var r2sq, negJ, twoV, negTwoV, X3 FieldElement
	r2sq.Sqr(&r2)
	negJ.Negate(&j)
	twoV.MulSmall(&v, 2)
	negTwoV.Negate(&twoV)
	X3.Add(&r2sq, &negJ)
	X3.Add(&X3, &negTwoV)

	var negX3, vMinusX3, r2TimesVm, y1j, twoY1J, negTwoY1J, Y3 FieldElement
	negX3.Negate(&X3)
	vMinusX3.Add(&v, &negX3)
	r2TimesVm.Mul(&r2, &vMinusX3)
	y1j.Mul(&a.Y, &j)
	twoY1J.MulSmall(&y1j, 2)
	negTwoY1J.Negate(&twoY1J)
	Y3.Add(&r2TimesVm, &negTwoY1J)

	var z1PlusH, z1PlusHsq, negZ1Z1, negHH, Z3 FieldElement
	z1PlusH.Add(&a.Z, &h)
	z1PlusHsq.Sqr(&z1PlusH)
	negZ1Z1.Negate(&z1z1)
	negHH.Negate(&hh)
	Z3.Add(&z1PlusHsq, &negZ1Z1)
	Z3.Add(&Z3, &negHH)

	r.X, r.Y, r.Z = X3, Y3, Z3
	r.Infinity = 0
}

// AddZinvVar sets r = a + b, where b is given in "virtual affine" form: its
// true affine coordinates are (b.X*bzinv^2, b.Y*bzinv^3). The real
// libsecp256k1 ecmult loop uses this to add precomputed-table points while
// deferring a shared inversion; this module gets the same public contract
// by normalizing b with bzinv and delegating to AddGeVar, trading the
// deferred-inversion optimization for one less addition formula to carry
// (DESIGN.md notes this as an intentional simplification).
func AddZinvVar(r *Jacobian, a *Jacobian, b *Affine, bzinv *FieldElement) {
	if b.Infinity {
		*r = *a
		return
	}
	var bzinv2, bzinv3 FieldElement
	bzinv2.Sqr(bzinv)
	bzinv3.Mul(&bzinv2, bzinv)
	var real Affine
	real.X.Mul(&b.X, &bzinv2)
	real.Y.Mul(&b.Y, &bzinv3)
	real.Infinity = false
	AddGeVar(r, a, &real)
}
