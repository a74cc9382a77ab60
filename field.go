package secp256k1

import "math/big"

// FieldElement is an element of the prime field modulo
// p = 2^256 - 2^32 - 977, held as five 52-bit limbs (little-endian limb
// order) the way original_source/schnorr_standalone.c's secp256k1_fe does.
// Limbs may temporarily exceed 52 bits: magnitude tracks how many additions
// a value has absorbed since its last normalization, the same lazy-
// reduction discipline as the C source (spec.md §4.2).
type FieldElement struct {
	n         [5]uint64
	magnitude int
	normal    bool
}

const (
	fieldM52 = 0xFFFFFFFFFFFFF   // 52-bit limb mask
	fieldM48 = 0x0FFFFFFFFFFFF   // top-limb mask (48 significant bits)
	fieldR   = 0x1000003D1       // 2^32 + 977, the field's reduction constant
)

// fieldP is p = 2^256 - 2^32 - 977, used only by the math/big paths: the
// byte/limb <-> big.Int boundary and InvVar/Sqrt (see the note above InvVar
// below).
var fieldP, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

// FieldOne is the multiplicative identity, already normalized.
var FieldOne = FieldElement{n: [5]uint64{1, 0, 0, 0, 0}, magnitude: 1, normal: true}

// SetInt sets r to the small non-negative integer v.
func (r *FieldElement) SetInt(v uint64) {
	r.n = [5]uint64{v, 0, 0, 0, 0}
	r.magnitude = 1
	r.normal = true
}

// Clear zeroises r.
func (r *FieldElement) Clear() {
	r.n = [5]uint64{}
	r.magnitude = 0
	r.normal = false
}

// NormalizeWeak folds the top limb's overflow back in via the R reduction
// constant, without performing the final conditional subtraction of p.
// The result has magnitude 1 but is not guaranteed to be the canonical
// representative in [0, p).
func (r *FieldElement) NormalizeWeak() {
	t0, t1, t2, t3, t4 := r.n[0], r.n[1], r.n[2], r.n[3], r.n[4]

	x := t4 >> 48
	t4 &= fieldM48

	t0 += x * fieldR
	t1 += t0 >> 52
	t0 &= fieldM52
	t2 += t1 >> 52
	t1 &= fieldM52
	t3 += t2 >> 52
	t2 &= fieldM52
	t4 += t3 >> 52
	t3 &= fieldM52

	r.n = [5]uint64{t0, t1, t2, t3, t4}
	r.magnitude = 1
	r.normal = false
}

// NormalizeVar fully reduces r to its canonical representative in [0, p),
// variable-time in the carry pattern (spec.md §4.2's "_var" convention:
// safe only when r is not secret).
func (r *FieldElement) NormalizeVar() {
	t0, t1, t2, t3, t4 := r.n[0], r.n[1], r.n[2], r.n[3], r.n[4]

	x := t4 >> 48
	t4 &= fieldM48

	t0 += x * fieldR
	t1 += t0 >> 52
	t0 &= fieldM52
	t2 += t1 >> 52
	t1 &= fieldM52
	m := t1
	t3 += t2 >> 52
	t2 &= fieldM52
	m &= t2
	t4 += t3 >> 52
	t3 &= fieldM52
	m &= t3

	x = (t4 >> 48) | (b64(t4 == fieldM48) & b64(m == fieldM52) & b64(t0 >= 0xFFFFEFFFFFC2F))

	if x != 0 {
		t0 += fieldR
		t1 += t0 >> 52
		t0 &= fieldM52
		t2 += t1 >> 52
		t1 &= fieldM52
		t3 += t2 >> 52
		t2 &= fieldM52
		t4 += t3 >> 52
		t3 &= fieldM52
		t4 &= fieldM48
	}

	r.n = [5]uint64{t0, t1, t2, t3, t4}
	r.magnitude = 1
	r.normal = true
}

// b64 converts a bool to an all-ones/all-zeros uint64 mask.
func b64(b bool) uint64 {
	if b {
		return ^uint64(0)
	}
	return 0
}

// NormalizesToZeroVar reports whether r's canonical representative is 0,
// without mutating r.
func (r FieldElement) NormalizesToZeroVar() bool {
	c := r
	c.NormalizeVar()
	return c.IsZero()
}

// IsZero reports whether a normalized r is exactly zero. Precondition:
// r must already be fully normalized (NormalizeVar called); NormalizeWeak
// is not enough, since it can leave p itself in place of 0.
func (r *FieldElement) IsZero() bool {
	return (r.n[0] | r.n[1] | r.n[2] | r.n[3] | r.n[4]) == 0
}

// IsOdd reports the parity of a normalized r's canonical value.
func (r *FieldElement) IsOdd() bool {
	return r.n[0]&1 != 0
}

// Equal reports whether two (not necessarily normalized) field elements
// represent the same value, normalizing working copies to compare.
func Equal(a, b *FieldElement) bool {
	ac, bc := *a, *b
	ac.NormalizeVar()
	bc.NormalizeVar()
	return ac.n == bc.n
}

// Add sets r = a + b. Magnitude is additive; callers must renormalize
// before any operation that requires bounded magnitude (Mul/Sqr/IsZero/...).
func (r *FieldElement) Add(a, b *FieldElement) {
	for i := range r.n {
		r.n[i] = a.n[i] + b.n[i]
	}
	r.magnitude = a.magnitude + b.magnitude
	r.normal = false
}

// AddInt adds the small non-negative integer v to r in place.
func (r *FieldElement) AddInt(v uint64) {
	r.n[0] += v
	r.magnitude++
	r.normal = false
}

// negateLimbConst are p's limbs (little-endian); NegateUnchecked scales them
// by 2*(m+1) to get the bias it subtracts a from.
var negateLimbConst = [5]uint64{0xFFFFEFFFFFC2F, fieldM52, fieldM52, fieldM52, fieldM48}

// NegateUnchecked sets r = -a, given that a's magnitude is m (a bound the
// caller asserts rather than one this function checks), matching the C
// source's secp256k1_fe_negate_unchecked contract exactly.
func (r *FieldElement) NegateUnchecked(a *FieldElement, m int) {
	for i := range r.n {
		r.n[i] = negateLimbConst[i]*2*uint64(m+1) - a.n[i]
	}
	r.magnitude = m + 1
	r.normal = false
}

// Negate sets r = -a, asserting a's tracked magnitude as the bound.
func (r *FieldElement) Negate(a *FieldElement) {
	r.NegateUnchecked(a, a.magnitude)
}

// CMov sets r = a if flag, leaving r unchanged otherwise.
func (r *FieldElement) CMov(a *FieldElement, flag bool) {
	mask1 := b64(flag)
	mask0 := ^mask1
	for i := range r.n {
		r.n[i] = (r.n[i] & mask0) | (a.n[i] & mask1)
	}
	if flag {
		r.magnitude = a.magnitude
		r.normal = a.normal
	}
}

// toBig returns a's canonical value as a big.Int, normalizing a working
// copy first.
func (a FieldElement) toBig() *big.Int {
	a.NormalizeVar()
	v := new(big.Int)
	shift := uint(0)
	for i := 0; i < 5; i++ {
		limb := new(big.Int).Lsh(new(big.Int).SetUint64(a.n[i]), shift)
		v.Or(v, limb)
		shift += 52
	}
	return v
}

// fromBig sets r's limbs from a big.Int already reduced mod p.
func (r *FieldElement) fromBig(v *big.Int) {
	mask := new(big.Int).SetUint64(fieldM52)
	t := new(big.Int).Set(v)
	for i := 0; i < 5; i++ {
		limb := new(big.Int).And(t, mask)
		r.n[i] = limb.Uint64()
		t.Rsh(t, 52)
	}
	r.magnitude = 1
	r.normal = true
}

// MulSmall sets r = a*k for a small non-negative integer k (2, 3, 4 or 8 in
// this module's doubling/addition formulas), a flat per-limb scale with no
// reduction, exactly like the C source's fe_mul_int: magnitude grows by the
// same factor k, and it is the caller's job (as with Add) to renormalize
// before any operation that needs a bounded magnitude.
func (r *FieldElement) MulSmall(a *FieldElement, k int64) {
	kk := uint64(k)
	for i := range r.n {
		r.n[i] = a.n[i] * kk
	}
	r.magnitude = a.magnitude * int(k)
	r.normal = false
}

// fieldR2 is fieldR<<4 (0x1000003D10). A 5x52 schoolbook convolution of two
// field elements produces nine base-2^52 digits (positions 0..8, plus a
// small carry at position 9); every position k >= 5 represents 2^(52k), and
// since 2^256 == fieldR (mod p) and 52k-256 == 4 (mod 52) for every k, each
// of those digits folds into position (k-5) through the same constant,
// fieldR2, rather than a different shift per position.
const fieldR2 = fieldR * 16

// feMulReduce runs the 5x52 schoolbook convolution of aw and bw (both
// already NormalizeWeak'd by the caller, so every limb is bounded: < 2^52
// for limbs 0-3, < 2^48 for limb 4) and folds it back into a clean,
// magnitude-1 5-limb result. Every step is a fixed sequence of u128
// multiplies, masks and shifts — no branch or loop bound depends on the
// operands' values, satisfying the constant-time contract Mul/Sqr need for
// ecmult_gen's ladder.
func feMulReduce(aw, bw *FieldElement) [5]uint64 {
	var c [9]u128
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			c[i+j] = c[i+j].add(mulU64(aw.n[i], bw.n[j]))
		}
	}

	// Ripple-carry the raw convolution digits down to clean 52-bit limbs.
	// c[8] is left unsplit here; the position-9 carry it holds is handled
	// explicitly below, since position 9 also folds back via fieldR2.
	for k := 0; k < 8; k++ {
		carry := c[k]
		carry.rshift(52)
		c[k] = u128{lo: c[k].lo & fieldM52}
		c[k+1] = c[k+1].add(carry)
	}
	low8 := c[8].lo & fieldM52
	carry8 := c[8]
	carry8.rshift(52)

	f0 := u128{lo: c[0].lo}.add(mulU64(c[5].lo, fieldR2))
	f1 := u128{lo: c[1].lo}.add(mulU64(c[6].lo, fieldR2))
	f2 := u128{lo: c[2].lo}.add(mulU64(c[7].lo, fieldR2))
	f3 := u128{lo: c[3].lo}.add(mulU64(low8, fieldR2))
	f4 := u128{lo: c[4].lo}.add(mulU64(carry8.lo, fieldR2))

	// One ripple-carry pass collapses f0..f3 to clean 52-bit limbs. f4 can
	// still be oversized (it absorbed the position-9 fold) and is brought
	// under 2^48 by the fixed-round loop below, via the same 2^256==fieldR
	// relation NormalizeWeak uses for its own top-limb overflow.
	cy := f0
	cy.rshift(52)
	r0 := u128{lo: f0.lo & fieldM52}
	f1 = f1.add(cy)

	cy = f1
	cy.rshift(52)
	r1 := u128{lo: f1.lo & fieldM52}
	f2 = f2.add(cy)

	cy = f2
	cy.rshift(52)
	r2 := u128{lo: f2.lo & fieldM52}
	f3 = f3.add(cy)

	cy = f3
	cy.rshift(52)
	r3 := u128{lo: f3.lo & fieldM52}
	f4 = f4.add(cy)

	// f4 starts out at most a few dozen bits past its nominal 48-bit width
	// (bounded by fieldR2 times a 52-bit digit). Each round below folds
	// the excess above bit 48 back into r0 via fieldR and re-propagates the
	// resulting carry; the excess shrinks by roughly fieldR2's own bit
	// length every round, so three fixed rounds converge it under 2^48
	// with margin to spare, regardless of the operands' actual values.
	for round := 0; round < 3; round++ {
		x := f4
		x.rshift(48)
		f4 = u128{lo: f4.lo & fieldM48}

		r0 = r0.add(mulU64(x.lo, fieldR))

		cy = r0
		cy.rshift(52)
		r0 = u128{lo: r0.lo & fieldM52}
		r1 = r1.add(cy)

		cy = r1
		cy.rshift(52)
		r1 = u128{lo: r1.lo & fieldM52}
		r2 = r2.add(cy)

		cy = r2
		cy.rshift(52)
		r2 = u128{lo: r2.lo & fieldM52}
		r3 = r3.add(cy)

		cy = r3
		cy.rshift(52)
		r3 = u128{lo: r3.lo & fieldM52}
		f4 = f4.add(cy)
	}

	return [5]uint64{r0.lo, r1.lo, r2.lo, r3.lo, f4.lo}
}

// Mul sets r = a*b mod p, via a constant-time 5x52 limb multiply (spec.md
// §4.2): the operation touches every limb of both operands the same way
// regardless of their values, unlike the math/big path this replaces, whose
// word-length-dependent algorithm selection made it unsafe to call on
// secret data from ecmult_gen's ladder.
func (r *FieldElement) Mul(a, b *FieldElement) {
	aw, bw := *a, *b
	aw.NormalizeWeak()
	bw.NormalizeWeak()
	r.n = feMulReduce(&aw, &bw)
	r.magnitude = 1
	r.normal = false
}

// Sqr sets r = a^2 mod p, via the same constant-time limb path as Mul (a
// dedicated squaring convolution would skip doubling the cross terms, but
// this module favors one verified multiply path over two).
func (r *FieldElement) Sqr(a *FieldElement) {
	aw := *a
	aw.NormalizeWeak()
	r.n = feMulReduce(&aw, &aw)
	r.magnitude = 1
	r.normal = false
}

// InvVar, Sqrt and the byte/big.Int boundary helpers below stay routed
// through math/big: every caller of InvVar/Sqrt in this module (point
// affine conversion, x-only pubkey decode) already operates on public
// data by the time it gets there, by the same "_var" convention Mul/Sqr's
// constant-time rewrite above exists to protect ecmult_gen's ladder from.
// Porting a second hand-carried algorithm (modular inverse, Tonelli-Shanks)
// for paths that never see secret data would trade a correct, well-tested
// standard-library routine for an unverifiable one with no payoff.

// InvVar sets r = a^-1 mod p, or r = 0 if a is zero. Variable-time.
func (r *FieldElement) InvVar(a *FieldElement) {
	v := a.toBig()
	if v.Sign() == 0 {
		r.SetInt(0)
		return
	}
	inv := new(big.Int).ModInverse(v, fieldP)
	r.fromBig(inv)
}

// fieldSqrtExp is (p+1)/4, valid since p mod 4 == 3 (spec.md §4.2).
var fieldSqrtExp = new(big.Int).Rsh(new(big.Int).Add(fieldP, big.NewInt(1)), 2)

// Sqrt sets r to a square root of a and reports whether one exists. When it
// does not, r is left unmodified (matching the C source's fe_sqrt contract).
func (r *FieldElement) Sqrt(a *FieldElement) bool {
	av := a.toBig()
	cand := new(big.Int).Exp(av, fieldSqrtExp, fieldP)
	check := new(big.Int).Mul(cand, cand)
	check.Mod(check, fieldP)
	if check.Cmp(av) != 0 {
		return false
	}
	r.fromBig(cand)
	return true
}

// SetBytesMod sets r from 32 big-endian bytes, reducing modulo p.
func (r *FieldElement) SetBytesMod(b32 *[32]byte) {
	v := new(big.Int).SetBytes(b32[:])
	v.Mod(v, fieldP)
	r.fromBig(v)
}

// SetBytesLimit sets r from 32 big-endian bytes, failing (returning false,
// leaving r unmodified) if the value is >= p.
func (r *FieldElement) SetBytesLimit(b32 *[32]byte) bool {
	v := new(big.Int).SetBytes(b32[:])
	if v.Cmp(fieldP) >= 0 {
		return false
	}
	r.fromBig(v)
	return true
}

// Bytes encodes a's canonical value as 32 big-endian bytes.
func (a *FieldElement) Bytes() [32]byte {
	var out [32]byte
	a.toBig().FillBytes(out[:])
	return out
}
