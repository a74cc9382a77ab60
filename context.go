package secp256k1

import "io"

// Context holds the immutable (after NewContext) state needed to sign and
// verify: the implicit generator-multiplication table (folded into the
// package-level genAffine and the ecmultGenLadder routine) and the
// blinding scalar/point pair that decorrelates EcmultGen's ladder from the
// caller's actual secret scalar (spec.md §5). A built Context is safe for
// concurrent Sign/Verify calls from multiple goroutines on disjoint
// inputs; RefreshBlinding is not concurrency-safe with those calls and
// requires the caller to exclude concurrent signers itself (spec.md §5:
// "single-writer discipline, not per-call locking").
type Context struct {
	built      bool
	blind      Scalar
	blindPoint Jacobian
}

// NewContext builds a Context, deriving its initial blinding value from
// rand. rand must yield cryptographically secure bytes (the CLI front end
// wires crypto/rand.Reader; see cmd/schnorrsig).
func NewContext(rand io.Reader) (*Context, error) {
	c := &Context{}
	if err := c.RefreshBlinding(rand); err != nil {
		return nil, err
	}
	c.built = true
	return c, nil
}

// RefreshBlinding draws a new blinding scalar from rand and recomputes the
// associated blinding point. Not safe to call concurrently with Sign on
// the same Context (spec.md §5).
func (c *Context) RefreshBlinding(rand io.Reader) error {
	var b32 [32]byte
	var blind Scalar
	for {
		if _, err := io.ReadFull(rand, b32[:]); err != nil {
			return err
		}
		if blind.SetBytesSeckey(&b32) {
			break
		}
	}

	var bp Jacobian
	ecmultGenLadder(&bp, &blind)

	c.blind = blind
	c.blindPoint = bp
	return nil
}

// Built reports whether the context has a usable blinding table.
func (c *Context) Built() bool {
	return c.built
}
