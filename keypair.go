package secp256k1

// Keypair bundles a secret scalar with its precomputed public point
// (spec.md §3). The secret scalar here does not have BIP-340's "pick the
// key whose point has even Y" adjustment folded in; Sign applies it, not
// NewKeypair: NewKeypair stores the raw secret key as given, and
// Sign negates a local copy at the point of use, mirroring
// secp256k1_schnorrsig_sign_internal's ordering (SPEC_FULL.md §4).
type Keypair struct {
	secret Scalar
	pubkey Affine
}

// NewKeypair derives a Keypair from a 32-byte secret key, using ctx's
// blinded generator multiplication to compute the public point.
func NewKeypair(ctx *Context, seckey *[32]byte) (*Keypair, error) {
	var sk Scalar
	if !sk.SetBytesSeckey(seckey) {
		return nil, ErrInvalidSecretKey
	}

	var pkJ Jacobian
	if err := ctx.EcmultGen(&pkJ, &sk); err != nil {
		return nil, err
	}

	var pk Affine
	GeSetGejVar(&pk, &pkJ)
	pk.X.NormalizeVar()
	pk.Y.NormalizeVar()

	return &Keypair{secret: sk, pubkey: pk}, nil
}

// Clear zeroises the keypair's secret scalar.
func (k *Keypair) Clear() {
	k.secret.Clear()
}

// XOnlyPubKey returns the keypair's x-only public key (spec.md §3/§6).
func (k *Keypair) XOnlyPubKey() XOnlyPubKey {
	var xo XOnlyPubKey
	xo.x = k.pubkey.X
	xo.x.NormalizeVar()
	return xo
}

// XOnlyPubKey is the 32-byte x-only public key BIP-340 signs against: a
// field element with its curve point's Y parity left implicit (always
// treated as even per the protocol's canonical lift, spec.md §4.6).
type XOnlyPubKey struct {
	x FieldElement
}

// Bytes encodes the x-only public key as 32 big-endian bytes.
func (p *XOnlyPubKey) Bytes() [32]byte {
	c := p.x
	c.NormalizeVar()
	return c.Bytes()
}

// XOnlyPubKeyFromBytes parses a 32-byte x-only public key, verifying that
// x actually lies on the curve (spec.md §6's "lift_x" validation).
func XOnlyPubKeyFromBytes(b32 *[32]byte) (*XOnlyPubKey, error) {
	var x FieldElement
	if !x.SetBytesLimit(b32) {
		return nil, ErrFieldOverflow
	}
	var a Affine
	if !a.SetXOVar(&x, false) {
		return nil, ErrNoSquareRoot
	}
	return &XOnlyPubKey{x: x}, nil
}

// affineEven returns the public key's lifted affine point, canonically
// choosing the even-Y square root (spec.md §4.6's verification-side
// lift_x).
func (p *XOnlyPubKey) affineEven() Affine {
	var a Affine
	a.SetXOVar(&p.x, false)
	return a
}
