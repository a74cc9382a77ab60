package secp256k1

import "math/bits"

// Sha256 is a streaming SHA-256 implementation that exposes its internal
// state words, unlike crypto/sha256: the BIP-340 tagged-hash fastpath
// (InitializeTagged and the three midstate constructors below) needs to
// seed the compression state directly from a precomputed midstate rather
// than hash a tag prefix on every call. Ported from
// original_source/schnorr_standalone.c's secp256k1_sha256_* (spec.md §4.5).
type Sha256 struct {
	s     [8]uint32
	buf   [64]byte
	nbuf  int
	bytes uint64
}

var sha256IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Initialize resets h to the standard SHA-256 initial state.
func (h *Sha256) Initialize() {
	h.s = sha256IV
	h.nbuf = 0
	h.bytes = 0
}

func (h *Sha256) transform(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = uint32(block[i*4])<<24 | uint32(block[i*4+1])<<16 | uint32(block[i*4+2])<<8 | uint32(block[i*4+3])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, hh := h.s[0], h.s[1], h.s[2], h.s[3], h.s[4], h.s[5], h.s[6], h.s[7]

	for i := 0; i < 64; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + sha256K[i] + w[i]
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		hh, g, f, e, d, c, b, a = g, f, e, d+t1, c, b, a, t1+t2
	}

	h.s[0] += a
	h.s[1] += b
	h.s[2] += c
	h.s[3] += d
	h.s[4] += e
	h.s[5] += f
	h.s[6] += g
	h.s[7] += hh
}

// Write absorbs data into the running hash state.
func (h *Sha256) Write(data []byte) {
	h.bytes += uint64(len(data))
	if h.nbuf > 0 {
		n := copy(h.buf[h.nbuf:], data)
		h.nbuf += n
		data = data[n:]
		if h.nbuf == 64 {
			h.transform(h.buf[:])
			h.nbuf = 0
		}
	}
	for len(data) >= 64 {
		h.transform(data[:64])
		data = data[64:]
	}
	if len(data) > 0 {
		h.nbuf = copy(h.buf[:], data)
	}
}

// Finalize pads and returns the 32-byte digest. h must not be reused
// afterward without a fresh Initialize/InitializeTagged call.
func (h *Sha256) Finalize() [32]byte {
	sizeBits := h.bytes * 8
	var pad [72]byte
	pad[0] = 0x80
	padLen := 1
	mod := int(h.bytes % 64)
	if mod < 56 {
		padLen += 55 - mod
	} else {
		padLen += 119 - mod
	}
	for i := 0; i < 8; i++ {
		pad[padLen+i] = byte(sizeBits >> (56 - 8*i))
	}
	padLen += 8
	h.Write(pad[:padLen])

	var out [32]byte
	for i := 0; i < 8; i++ {
		out[i*4] = byte(h.s[i] >> 24)
		out[i*4+1] = byte(h.s[i] >> 16)
		out[i*4+2] = byte(h.s[i] >> 8)
		out[i*4+3] = byte(h.s[i])
	}
	return out
}

// InitializeTagged seeds h with the BIP-340 tagged-hash prefix for an
// arbitrary tag: it resets h and Writes SHA256(tag) || SHA256(tag), leaving
// the state and byte counter (64) that the midstate fastpaths below start
// from (spec.md §4.5/§6).
func (h *Sha256) InitializeTagged(tag []byte) {
	var tagHash Sha256
	tagHash.Initialize()
	tagHash.Write(tag)
	sum := tagHash.Finalize()

	h.Initialize()
	h.Write(sum[:])
	h.Write(sum[:])
}

// The three fixed BIP-340 tags used by the Schnorr protocol (spec.md §6),
// with precomputed midstates matching
// original_source/schnorr_standalone.c's nonce_function_bip340_sha256_tagged,
// ...tagged_aux, and secp256k1_schnorrsig_sha256_tagged. spec.md §6's own
// transcription mislabels the nonce-tag midstate as the aux tag's; this
// module follows the source (SPEC_FULL.md §4, DESIGN.md's Open Questions).
var (
	nonceTagMidstate = [8]uint32{
		0x46615b35, 0xf4bfbff7, 0x9f8dc671, 0x83627ab3,
		0x60217180, 0x57358661, 0x21a29e54, 0x68b07b4c,
	}
	auxTagMidstate = [8]uint32{
		0x24dd3219, 0x4eba7e70, 0xca0fabb9, 0x0fa3166d,
		0x3afbe4b1, 0x4c44df97, 0x4aac2739, 0x249e850a,
	}
	challengeTagMidstate = [8]uint32{
		0x9cecba11, 0x23925381, 0x11679112, 0xd1627e0f,
		0x97c87550, 0x003cc765, 0x90f61164, 0x33e9b66a,
	}
)

func (h *Sha256) initFastpath(mid [8]uint32) {
	h.s = mid
	h.nbuf = 0
	h.bytes = 64
}

// InitializeNonceTag seeds h with the "BIP0340/nonce" tagged-hash midstate.
func (h *Sha256) InitializeNonceTag() { h.initFastpath(nonceTagMidstate) }

// InitializeAuxTag seeds h with the "BIP0340/aux" tagged-hash midstate.
func (h *Sha256) InitializeAuxTag() { h.initFastpath(auxTagMidstate) }

// InitializeChallengeTag seeds h with the "BIP0340/challenge" tagged-hash
// midstate.
func (h *Sha256) InitializeChallengeTag() { h.initFastpath(challengeTagMidstate) }

// TaggedHash256 is a convenience one-shot helper equivalent to
// InitializeTagged(tag); Write(msg...); Finalize().
func TaggedHash256(tag []byte, msg ...[]byte) [32]byte {
	var h Sha256
	h.InitializeTagged(tag)
	for _, m := range msg {
		h.Write(m)
	}
	return h.Finalize()
}
