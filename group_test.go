package secp256k1

import "testing"

func TestGeneratorOnCurve(t *testing.T) {
	var x3, x2, rhs, lhs, seven FieldElement
	x2.Sqr(&genAffine.X)
	x3.Mul(&x2, &genAffine.X)
	seven.SetInt(7)
	rhs.Add(&x3, &seven)
	lhs.Sqr(&genAffine.Y)
	if !Equal(&lhs, &rhs) {
		t.Fatal("generator point does not satisfy y^2 = x^3 + 7")
	}
}

func TestDoubleMatchesSelfAddition(t *testing.T) {
	var g Jacobian
	GejSetGe(&g, &genAffine)

	var doubled Jacobian
	DoubleVar(&doubled, &g)

	var added Jacobian
	AddGeVar(&added, &g, &genAffine)

	var da, aa Affine
	GeSetGejVar(&da, &doubled)
	GeSetGejVar(&aa, &added)
	da.X.NormalizeVar()
	da.Y.NormalizeVar()
	aa.X.NormalizeVar()
	aa.Y.NormalizeVar()

	if !Equal(&da.X, &aa.X) || !Equal(&da.Y, &aa.Y) {
		t.Fatal("2*G via DoubleVar != G+G via AddGeVar")
	}
}

func TestJacobianAffineRoundTrip(t *testing.T) {
	var g Jacobian
	GejSetGe(&g, &genAffine)

	var back Affine
	GeSetGejVar(&back, &g)
	back.X.NormalizeVar()
	back.Y.NormalizeVar()

	if !Equal(&back.X, &genAffine.X) || !Equal(&back.Y, &genAffine.Y) {
		t.Fatal("Jacobian<->affine round trip changed the point")
	}
}

func TestSetXOVarRecoversGenerator(t *testing.T) {
	x := genAffine.X
	x.NormalizeVar()
	var r Affine
	if !r.SetXOVar(&x, genAffine.Y.IsOdd()) {
		t.Fatal("SetXOVar failed to decode the generator's x coordinate")
	}
	if !Equal(&r.Y, &genAffine.Y) {
		t.Fatal("SetXOVar recovered the wrong y parity")
	}
}

func TestStorageBytesRoundTrip(t *testing.T) {
	sb := genAffine.ToStorageBytes()
	var back Affine
	back.FromStorageBytes(&sb)
	if !Equal(&back.X, &genAffine.X) || !Equal(&back.Y, &genAffine.Y) {
		t.Fatal("storage byte round trip changed the point")
	}
}

func TestEcmultGenMatchesRepeatedDoubling(t *testing.T) {
	ctx, err := NewContext(deterministicTestRand{})
	if err != nil {
		t.Fatal(err)
	}

	k := ScalarOne
	var kPlusOne Scalar
	kPlusOne.Add(&k, &ScalarOne)

	var r1, r2, expected Jacobian
	if err := ctx.EcmultGen(&r1, &k); err != nil {
		t.Fatal(err)
	}
	if err := ctx.EcmultGen(&r2, &kPlusOne); err != nil {
		t.Fatal(err)
	}

	var gJac Jacobian
	GejSetGe(&gJac, &genAffine)
	DoubleVar(&expected, &gJac)

	var a2, aExpected Affine
	GeSetGejVar(&a2, &r2)
	GeSetGejVar(&aExpected, &expected)
	a2.X.NormalizeVar()
	a2.Y.NormalizeVar()
	aExpected.X.NormalizeVar()
	aExpected.Y.NormalizeVar()

	if !Equal(&a2.X, &aExpected.X) || !Equal(&a2.Y, &aExpected.Y) {
		t.Fatal("EcmultGen(2) != 2*G")
	}

	var a1 Affine
	GeSetGejVar(&a1, &r1)
	a1.X.NormalizeVar()
	a1.Y.NormalizeVar()
	if !Equal(&a1.X, &genAffine.X) || !Equal(&a1.Y, &genAffine.Y) {
		t.Fatal("EcmultGen(1) != G")
	}
}

func TestEcmultMatchesEcmultGen(t *testing.T) {
	ctx, err := NewContext(deterministicTestRand{})
	if err != nil {
		t.Fatal(err)
	}

	var k Scalar
	kb := [32]byte{0x2a}
	k.SetBytes(&kb)

	var viaGen Jacobian
	if err := ctx.EcmultGen(&viaGen, &k); err != nil {
		t.Fatal(err)
	}

	var gJac, viaEcmult Jacobian
	GejSetGe(&gJac, &genAffine)
	Ecmult(&viaEcmult, &gJac, &ScalarZero, &k) // 0*G + k*G == k*G

	var a1, a2 Affine
	GeSetGejVar(&a1, &viaGen)
	GeSetGejVar(&a2, &viaEcmult)
	a1.X.NormalizeVar()
	a1.Y.NormalizeVar()
	a2.X.NormalizeVar()
	a2.Y.NormalizeVar()

	if !Equal(&a1.X, &a2.X) || !Equal(&a1.Y, &a2.Y) {
		t.Fatal("Ecmult(0, k) != EcmultGen(k)")
	}
}

// deterministicTestRand is a fixed byte stream, used only so tests don't
// depend on crypto/rand for reproducibility of blinding-value derivation.
type deterministicTestRand struct{}

func (deterministicTestRand) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(i*7 + 11)
	}
	return len(p), nil
}
