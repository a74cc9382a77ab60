package secp256k1

import (
	"crypto/rand"
	"testing"

	"github.com/holiman/uint256"
)

// scalarOrderU256 is n as a uint256.Int, used as an independent oracle to
// differentially test Scalar's hand-rolled add/mul against a production
// 256-bit arithmetic library (spec.md §8, SPEC_FULL.md §2.5).
var scalarOrderU256 = func() *uint256.Int {
	v, err := uint256.FromHex("0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	if err != nil {
		panic(err)
	}
	return v
}()

func randomScalarBytes(t *testing.T) [32]byte {
	t.Helper()
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestScalarSetBytesRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		b := randomScalarBytes(t)
		var s Scalar
		s.SetBytes(&b)
		got := s.Bytes()

		var u uint256.Int
		u.SetBytes(b[:])
		u.Mod(&u, scalarOrderU256)
		want := u.Bytes32()

		if got != want {
			t.Fatalf("round trip mismatch: got %x want %x", got, want)
		}
	}
}

func TestScalarAddMatchesOracle(t *testing.T) {
	for i := 0; i < 64; i++ {
		ab := randomScalarBytes(t)
		bb := randomScalarBytes(t)
		var a, b, r Scalar
		a.SetBytes(&ab)
		b.SetBytes(&bb)
		r.Add(&a, &b)

		var ua, ub, uo uint256.Int
		ua.SetBytes(ab[:])
		ua.Mod(&ua, scalarOrderU256)
		ub.SetBytes(bb[:])
		ub.Mod(&ub, scalarOrderU256)
		uo.AddMod(&ua, &ub, scalarOrderU256)

		if got, want := r.Bytes(), uo.Bytes32(); got != want {
			t.Fatalf("add mismatch: got %x want %x", got, want)
		}
	}
}

func TestScalarMulMatchesOracle(t *testing.T) {
	for i := 0; i < 64; i++ {
		ab := randomScalarBytes(t)
		bb := randomScalarBytes(t)
		var a, b, r Scalar
		a.SetBytes(&ab)
		b.SetBytes(&bb)
		r.Mul(&a, &b)

		var ua, ub, uo uint256.Int
		ua.SetBytes(ab[:])
		ua.Mod(&ua, scalarOrderU256)
		ub.SetBytes(bb[:])
		ub.Mod(&ub, scalarOrderU256)
		uo.MulMod(&ua, &ub, scalarOrderU256)

		if got, want := r.Bytes(), uo.Bytes32(); got != want {
			t.Fatalf("mul mismatch: got %x want %x", got, want)
		}
	}
}

func TestScalarNegateIsAdditiveInverse(t *testing.T) {
	for i := 0; i < 32; i++ {
		ab := randomScalarBytes(t)
		var a, neg, sum Scalar
		a.SetBytes(&ab)
		neg.Negate(&a)
		sum.Add(&a, &neg)
		if !sum.IsZero() {
			t.Fatalf("a + (-a) != 0")
		}
	}
}

func TestScalarMulCommutes(t *testing.T) {
	ab := randomScalarBytes(t)
	bb := randomScalarBytes(t)
	var a, b, ab1, ab2 Scalar
	a.SetBytes(&ab)
	b.SetBytes(&bb)
	ab1.Mul(&a, &b)
	ab2.Mul(&b, &a)
	if ab1.Bytes() != ab2.Bytes() {
		t.Fatalf("scalar multiplication is not commutative")
	}
}

func TestScalarSetBytesSeckeyRejectsZero(t *testing.T) {
	var zero [32]byte
	var s Scalar
	if s.SetBytesSeckey(&zero) {
		t.Fatal("zero accepted as a secret key")
	}
}

func TestScalarCMov(t *testing.T) {
	ab := randomScalarBytes(t)
	bb := randomScalarBytes(t)
	var a, b Scalar
	a.SetBytes(&ab)
	b.SetBytes(&bb)

	r := a
	r.CMov(&b, false)
	if r.Bytes() != a.Bytes() {
		t.Fatal("CMov(false) modified the destination")
	}
	r.CMov(&b, true)
	if r.Bytes() != b.Bytes() {
		t.Fatal("CMov(true) did not copy the source")
	}
}
