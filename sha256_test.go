package secp256k1

import "testing"

func TestSha256EmptyString(t *testing.T) {
	var h Sha256
	h.Initialize()
	got := h.Finalize()
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if hexString(got[:]) != want {
		t.Fatalf("sha256(\"\") = %s, want %s", hexString(got[:]), want)
	}
}

func TestSha256Abc(t *testing.T) {
	var h Sha256
	h.Initialize()
	h.Write([]byte("abc"))
	got := h.Finalize()
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if hexString(got[:]) != want {
		t.Fatalf("sha256(\"abc\") = %s, want %s", hexString(got[:]), want)
	}
}

func TestTaggedHashFastpathMatchesGeneric(t *testing.T) {
	cases := []struct {
		tag  string
		init func(*Sha256)
	}{
		{"BIP0340/nonce", (*Sha256).InitializeNonceTag},
		{"BIP0340/aux", (*Sha256).InitializeAuxTag},
		{"BIP0340/challenge", (*Sha256).InitializeChallengeTag},
	}
	msg := []byte("some message bytes to absorb after the midstate")

	for _, c := range cases {
		var generic Sha256
		generic.InitializeTagged([]byte(c.tag))
		generic.Write(msg)
		want := generic.Finalize()

		var fast Sha256
		c.init(&fast)
		fast.Write(msg)
		got := fast.Finalize()

		if got != want {
			t.Fatalf("%s: fastpath midstate does not match generic initialize_tagged", c.tag)
		}
	}
}

func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xf]
	}
	return string(out)
}
