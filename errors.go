package secp256k1

import "errors"

// Sentinel errors for the constructors and context operations that have no
// secret output to protect and so can afford a descriptive error, unlike
// Sign/Verify which report failure as a single bool (spec.md §7). Named
// and declared the way the teacher's pkg/crypto/ecies.go declares its own
// package-level sentinel errors.
var (
	// ErrOverflow describes a 32-byte scalar encoding that is >= the
	// group order n. No function in this package returns it; Scalar.SetBytes
	// reports overflow as a bool.
	ErrOverflow = errors.New("secp256k1: scalar overflows group order")

	// ErrFieldOverflow is returned when a 32-byte field encoding is >= p.
	ErrFieldOverflow = errors.New("secp256k1: value overflows field prime")

	// ErrNoSquareRoot is returned when an x coordinate does not lie on
	// the curve (x^3+7 has no square root mod p).
	ErrNoSquareRoot = errors.New("secp256k1: x coordinate is not on the curve")

	// ErrInvalidSecretKey is returned when a 32-byte secret key encoding
	// is zero or >= n.
	ErrInvalidSecretKey = errors.New("secp256k1: invalid secret key")

	// ErrGeneratorTableNotBuilt is returned by EcmultGen when called on a
	// Context that was never built (spec.md §5's "must be built before
	// first use" precondition).
	ErrGeneratorTableNotBuilt = errors.New("secp256k1: generator multiplication table not built")

	// ErrZeroNonce describes the negligible-probability event Sign reports
	// as ok == false: the BIP-340 nonce function produced a zero scalar
	// (spec.md §4.6's "continue anyway, then discard" handling is internal
	// to Sign; by the time this surfaces the signature output has already
	// been zeroed). Sign itself stays boolean-only; callers that want a
	// reason for a failed Sign attach this sentinel themselves, the way
	// cmd/schnorrsig's cmdSign does.
	ErrZeroNonce = errors.New("secp256k1: nonce derivation produced a zero scalar")

	// ErrInvalidSignature is returned by VerifyErr, the error-returning
	// wrapper around the boolean Verify, for callers that want a reason a
	// signature was rejected (malformed r/s encoding or a cryptographically
	// false signature alike) rather than a plain bool.
	ErrInvalidSignature = errors.New("secp256k1: invalid signature")
)
