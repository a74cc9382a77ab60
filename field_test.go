package secp256k1

import (
	"crypto/rand"
	"testing"

	"github.com/holiman/uint256"
)

var fieldPrimeU256 = func() *uint256.Int {
	v, err := uint256.FromHex("0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	if err != nil {
		panic(err)
	}
	return v
}()

func randomFieldBytes(t *testing.T) [32]byte {
	t.Helper()
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFieldSetBytesRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		b := randomFieldBytes(t)
		var f FieldElement
		f.SetBytesMod(&b)
		f.NormalizeVar()
		got := f.Bytes()

		var u uint256.Int
		u.SetBytes(b[:])
		u.Mod(&u, fieldPrimeU256)
		want := u.Bytes32()

		if got != want {
			t.Fatalf("round trip mismatch: got %x want %x", got, want)
		}
	}
}

func TestFieldMulMatchesOracle(t *testing.T) {
	for i := 0; i < 64; i++ {
		ab := randomFieldBytes(t)
		bb := randomFieldBytes(t)
		var a, b, r FieldElement
		a.SetBytesMod(&ab)
		b.SetBytesMod(&bb)
		r.Mul(&a, &b)

		var ua, ub, uo uint256.Int
		ua.SetBytes(ab[:])
		ua.Mod(&ua, fieldPrimeU256)
		ub.SetBytes(bb[:])
		ub.Mod(&ub, fieldPrimeU256)
		uo.MulMod(&ua, &ub, fieldPrimeU256)

		if got, want := r.Bytes(), uo.Bytes32(); got != want {
			t.Fatalf("mul mismatch: got %x want %x", got, want)
		}
	}
}

func TestFieldSqrMatchesMul(t *testing.T) {
	for i := 0; i < 32; i++ {
		ab := randomFieldBytes(t)
		var a, viaSqr, viaMul FieldElement
		a.SetBytesMod(&ab)
		viaSqr.Sqr(&a)
		viaMul.Mul(&a, &a)
		if viaSqr.Bytes() != viaMul.Bytes() {
			t.Fatal("Sqr(a) != Mul(a, a)")
		}
	}
}

func TestFieldInvVar(t *testing.T) {
	for i := 0; i < 32; i++ {
		ab := randomFieldBytes(t)
		var a FieldElement
		a.SetBytesMod(&ab)
		if a.NormalizesToZeroVar() {
			continue
		}
		var inv, prod FieldElement
		inv.InvVar(&a)
		prod.Mul(&a, &inv)
		var one FieldElement
		one.SetInt(1)
		if !Equal(&prod, &one) {
			t.Fatalf("a * a^-1 != 1")
		}
	}
}

func TestFieldSqrtMatchesSquare(t *testing.T) {
	for i := 0; i < 64; i++ {
		ab := randomFieldBytes(t)
		var a, sq, root FieldElement
		a.SetBytesMod(&ab)
		sq.Sqr(&a)
		if !root.Sqrt(&sq) {
			t.Fatal("sqrt of a perfect square failed")
		}
		var check FieldElement
		check.Sqr(&root)
		if !Equal(&check, &sq) {
			t.Fatal("sqrt(a^2)^2 != a^2")
		}
	}
}

func TestFieldNegateIsAdditiveInverse(t *testing.T) {
	for i := 0; i < 32; i++ {
		ab := randomFieldBytes(t)
		var a, neg, sum, zero FieldElement
		a.SetBytesMod(&ab)
		neg.Negate(&a)
		sum.Add(&a, &neg)
		zero.SetInt(0)
		if !Equal(&sum, &zero) {
			t.Fatal("a + (-a) != 0")
		}
	}
}
