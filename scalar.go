package secp256k1

import "encoding/binary"

// Scalar is a 256-bit integer modulo the secp256k1 group order n, held as
// four 64-bit limbs in little-endian limb order (d[0] least significant).
// Every exported operation is constant-time in its scalar inputs: control
// flow never branches on a limb value, only on the public overflow/zero
// flags a caller may choose to act on.
type Scalar struct {
	d [4]uint64
}

// Group order n = 0xFFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFE BAAEDCE6 AF48A03B
// BFD25E8C D0364141, and its two's-complement-ish "c = 2^256 - n" limbs
// used by the multiplication reduction.
const (
	n0 uint64 = 0xBFD25E8CD0364141
	n1 uint64 = 0xBAAEDCE6AF48A03B
	n2 uint64 = 0xFFFFFFFFFFFFFFFE
	n3 uint64 = 0xFFFFFFFFFFFFFFFF

	nc0 uint64 = ^n0 + 1
	nc1 uint64 = ^n1
	nc2 uint64 = 1
)

// ScalarOne is the multiplicative identity.
var ScalarOne = Scalar{d: [4]uint64{1, 0, 0, 0}}

// ScalarZero is the additive identity.
var ScalarZero = Scalar{}

// checkOverflow reports whether a >= n, without branching on limb values.
func (a *Scalar) checkOverflow() int {
	var yes, no int
	no |= b2i(a.d[3] < n3)
	no |= b2i(a.d[2] < n2)
	yes |= b2i(a.d[2] > n2) &^ no
	no |= b2i(a.d[1] < n1)
	yes |= b2i(a.d[1] > n1) &^ no
	yes |= b2i(a.d[0] >= n0) &^ no
	return yes
}

// reduce conditionally subtracts n (by adding its two's-complement-style
// negation) when overflow is 1, and returns overflow unchanged.
func (a *Scalar) reduce(overflow uint64) uint64 {
	var t u128
	t = u128FromU64(a.d[0])
	t.accumU64(overflow * nc0)
	a.d[0] = t.toU64()
	t.rshift(64)
	t.accumU64(a.d[1])
	t.accumU64(overflow * nc1)
	a.d[1] = t.toU64()
	t.rshift(64)
	t.accumU64(a.d[2])
	t.accumU64(overflow * nc2)
	a.d[2] = t.toU64()
	t.rshift(64)
	t.accumU64(a.d[3])
	a.d[3] = t.toU64()
	return overflow
}

// b2i converts a bool to 0/1 without branching in the caller.
func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SetBytes sets a from 32 big-endian bytes, reducing modulo n. It reports
// whether the raw value was >= n (the overflow flag); this flag, and
// whether the input pointer was well-formed, are the only things allowed
// to affect subsequent control flow for secret scalars.
func (a *Scalar) SetBytes(b32 *[32]byte) (overflow bool) {
	a.d[0] = binary.BigEndian.Uint64(b32[24:32])
	a.d[1] = binary.BigEndian.Uint64(b32[16:24])
	a.d[2] = binary.BigEndian.Uint64(b32[8:16])
	a.d[3] = binary.BigEndian.Uint64(b32[0:8])
	over := a.reduce(uint64(a.checkOverflow()))
	return over != 0
}

// SetBytesSeckey sets a from a 32-byte secret key, succeeding only if the
// value is both non-overflowing and nonzero (spec.md §4.1).
func (a *Scalar) SetBytesSeckey(b32 *[32]byte) bool {
	overflow := a.SetBytes(b32)
	return !overflow && !a.IsZero()
}

// Bytes encodes a as 32 big-endian bytes.
func (a *Scalar) Bytes() [32]byte {
	var out [32]byte
	binary.BigEndian.PutUint64(out[0:8], a.d[3])
	binary.BigEndian.PutUint64(out[8:16], a.d[2])
	binary.BigEndian.PutUint64(out[16:24], a.d[1])
	binary.BigEndian.PutUint64(out[24:32], a.d[0])
	return out
}

// IsZero reports whether a is the zero scalar.
func (a *Scalar) IsZero() bool {
	return (a.d[0] | a.d[1] | a.d[2] | a.d[3]) == 0
}

// Negate sets r = -a mod n. r and a may alias.
func (r *Scalar) Negate(a *Scalar) {
	nonzero := uint64(0xFFFFFFFFFFFFFFFF) * uint64(b2i(!a.IsZero()))
	var t u128

	t = u128FromU64(^a.d[0])
	t.accumU64(n0 + 1)
	d0 := t.toU64() & nonzero
	t.rshift(64)
	t.accumU64(^a.d[1])
	t.accumU64(n1)
	d1 := t.toU64() & nonzero
	t.rshift(64)
	t.accumU64(^a.d[2])
	t.accumU64(n2)
	d2 := t.toU64() & nonzero
	t.rshift(64)
	t.accumU64(^a.d[3])
	t.accumU64(n3)
	d3 := t.toU64() & nonzero

	r.d[0], r.d[1], r.d[2], r.d[3] = d0, d1, d2, d3
}

// Add sets r = a + b mod n and returns the overflow bit consumed during
// reduction (always 0 or 1 on well-formed inputs).
func (r *Scalar) Add(a, b *Scalar) uint64 {
	var t u128
	t = u128FromU64(a.d[0])
	t.accumU64(b.d[0])
	r.d[0] = t.toU64()
	t.rshift(64)
	t.accumU64(a.d[1])
	t.accumU64(b.d[1])
	r.d[1] = t.toU64()
	t.rshift(64)
	t.accumU64(a.d[2])
	t.accumU64(b.d[2])
	r.d[2] = t.toU64()
	t.rshift(64)
	t.accumU64(a.d[3])
	t.accumU64(b.d[3])
	r.d[3] = t.toU64()
	t.rshift(64)
	overflow := t.toU64() + uint64(r.checkOverflow())
	r.reduce(overflow)
	return overflow
}

// Mul sets r = a*b mod n.
func (r *Scalar) Mul(a, b *Scalar) {
	l := scalarMul512(a, b)
	scalarReduce512(r, &l)
}

// CMov sets r = a if flag, leaving r unchanged otherwise, without
// branching on flag at the machine-instruction level.
func (r *Scalar) CMov(a *Scalar, flag bool) {
	mask1 := uint64(0)
	if flag {
		mask1 = ^uint64(0)
	}
	mask0 := ^mask1
	r.d[0] = (r.d[0] & mask0) | (a.d[0] & mask1)
	r.d[1] = (r.d[1] & mask0) | (a.d[1] & mask1)
	r.d[2] = (r.d[2] & mask0) | (a.d[2] & mask1)
	r.d[3] = (r.d[3] & mask0) | (a.d[3] & mask1)
}

// Clear zeroises a's limbs. Every call site holding a secret scalar must
// call this on every exit path (spec.md §3).
func (a *Scalar) Clear() {
	a.d[0], a.d[1], a.d[2], a.d[3] = 0, 0, 0, 0
}

// scalarAcc is the carry-propagating accumulator behind the scalar
// multiply/reduce routines, mirroring the C source's muladd/sumadd/extract
// macro family as methods on a 192-bit (c0,c1,c2) accumulator.
type scalarAcc struct {
	c0, c1 uint64
	c2     uint32
}

func (s *scalarAcc) muladd(a, b uint64) {
	hi, lo := mulU64(a, b).hi, mulU64(a, b).lo
	newC0, carry1 := addCarry(s.c0, lo)
	s.c0 = newC0
	hi += carry1
	newC1, carry2 := addCarry(s.c1, hi)
	s.c1 = newC1
	s.c2 += uint32(carry2)
}

func (s *scalarAcc) muladdFast(a, b uint64) {
	hi, lo := mulU64(a, b).hi, mulU64(a, b).lo
	newC0, carry1 := addCarry(s.c0, lo)
	s.c0 = newC0
	hi += carry1
	s.c1 += hi
}

func (s *scalarAcc) sumadd(a uint64) {
	newC0, carry1 := addCarry(s.c0, a)
	s.c0 = newC0
	newC1, carry2 := addCarry(s.c1, carry1)
	s.c1 = newC1
	s.c2 += uint32(carry2)
}

func (s *scalarAcc) sumaddFast(a uint64) {
	newC0, carry1 := addCarry(s.c0, a)
	s.c0 = newC0
	s.c1 += carry1
}

func (s *scalarAcc) extract() uint64 {
	n := s.c0
	s.c0 = s.c1
	s.c1 = uint64(s.c2)
	s.c2 = 0
	return n
}

func (s *scalarAcc) extractFast() uint64 {
	n := s.c0
	s.c0 = s.c1
	s.c1 = 0
	return n
}

// addCarry returns a+b and the carry-out (0 or 1).
func addCarry(a, b uint64) (sum, carry uint64) {
	sum = a + b
	if sum < a {
		carry = 1
	}
	return
}

// scalarMul512 computes the full 512-bit product a*b as eight 64-bit limbs,
// little-endian limb order.
func scalarMul512(a, b *Scalar) [8]uint64 {
	var l [8]uint64
	var acc scalarAcc

	acc.muladdFast(a.d[0], b.d[0])
	l[0] = acc.extractFast()
	acc.muladd(a.d[0], b.d[1])
	acc.muladd(a.d[1], b.d[0])
	l[1] = acc.extract()
	acc.muladd(a.d[0], b.d[2])
	acc.muladd(a.d[1], b.d[1])
	acc.muladd(a.d[2], b.d[0])
	l[2] = acc.extract()
	acc.muladd(a.d[0], b.d[3])
	acc.muladd(a.d[1], b.d[2])
	acc.muladd(a.d[2], b.d[1])
	acc.muladd(a.d[3], b.d[0])
	l[3] = acc.extract()
	acc.muladd(a.d[1], b.d[3])
	acc.muladd(a.d[2], b.d[2])
	acc.muladd(a.d[3], b.d[1])
	l[4] = acc.extract()
	acc.muladd(a.d[2], b.d[3])
	acc.muladd(a.d[3], b.d[2])
	l[5] = acc.extract()
	acc.muladdFast(a.d[3], b.d[3])
	l[6] = acc.extractFast()
	l[7] = acc.c0

	return l
}

// scalarReduce512 reduces the 512-bit product l (as produced by
// scalarMul512) into r, modulo n, via the documented 512->385->258->256
// folding cascade (spec.md §4.1).
func scalarReduce512(r *Scalar, l *[8]uint64) {
	n0l, n1l, n2l, n3l := l[4], l[5], l[6], l[7]

	// Reduce 512 bits into 385.
	acc := scalarAcc{c0: l[0]}
	acc.muladdFast(n0l, nc0)
	m0 := acc.extractFast()
	acc.sumaddFast(l[1])
	acc.muladd(n1l, nc0)
	acc.muladd(n0l, nc1)
	m1 := acc.extract()
	acc.sumadd(l[2])
	acc.muladd(n2l, nc0)
	acc.muladd(n1l, nc1)
	acc.sumadd(n0l)
	m2 := acc.extract()
	acc.sumadd(l[3])
	acc.muladd(n3l, nc0)
	acc.muladd(n2l, nc1)
	acc.sumadd(n1l)
	m3 := acc.extract()
	acc.muladd(n3l, nc1)
	acc.sumadd(n2l)
	m4 := acc.extract()
	acc.sumaddFast(n3l)
	m5 := acc.extractFast()
	m6 := acc.c0

	// Reduce 385 bits into 258.
	acc = scalarAcc{c0: m0}
	acc.muladdFast(m4, nc0)
	p0 := acc.extractFast()
	acc.sumaddFast(m1)
	acc.muladd(m5, nc0)
	acc.muladd(m4, nc1)
	p1 := acc.extract()
	acc.sumadd(m2)
	acc.muladd(m6, nc0)
	acc.muladd(m5, nc1)
	acc.sumadd(m4)
	p2 := acc.extract()
	acc.sumaddFast(m3)
	acc.muladdFast(m6, nc1)
	acc.sumaddFast(m5)
	p3 := acc.extractFast()
	p4 := acc.c0 + m6

	// Reduce 258 bits into 256.
	c := u128FromU64(p0)
	c.accumMul(nc0, p4)
	r.d[0] = c.toU64()
	c.rshift(64)
	c.accumU64(p1)
	c.accumMul(nc1, p4)
	r.d[1] = c.toU64()
	c.rshift(64)
	c.accumU64(p2)
	c.accumU64(p4)
	r.d[2] = c.toU64()
	c.rshift(64)
	c.accumU64(p3)
	r.d[3] = c.toU64()
	carry := c.hiU64()

	r.reduce(carry + uint64(r.checkOverflow()))
}
