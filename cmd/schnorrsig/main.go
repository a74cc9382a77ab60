// Command schnorrsig is a thin front end over the secp256k1 package: it
// generates keypairs, signs 32-byte message hashes, and verifies BIP-340
// signatures, all via hex-encoded flags and stdout. It carries no
// persistent state and no config file, matching the teacher's
// cmd/eth2028 convention of plain flag-package parsing (FlagSet.String and
// FlagSet.Bool here) rather than a config-file-driven CLI framework.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	secp256k1 "github.com/mleku/p256k1"
	"github.com/mleku/p256k1/internal/log"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := log.Default().Module("schnorrsig")

	fs := flag.NewFlagSet("schnorrsig", flag.ContinueOnError)
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println("schnorrsig", version)
		return 0
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "usage: schnorrsig <keygen|sign|verify> [flags]")
		return 2
	}

	switch rest[0] {
	case "keygen":
		return cmdKeygen(logger, rest[1:])
	case "sign":
		return cmdSign(logger, rest[1:])
	case "verify":
		return cmdVerify(logger, rest[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", rest[0])
		return 2
	}
}

func cmdKeygen(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	seckeyHex := fs.String("seckey", "", "32-byte hex secret key (random if omitted)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, err := secp256k1.NewContext(rand.Reader)
	if err != nil {
		logger.Error("failed to build context", "err", err)
		return 1
	}

	var seckey [32]byte
	if *seckeyHex == "" {
		if _, err := rand.Read(seckey[:]); err != nil {
			logger.Error("failed to generate secret key", "err", err)
			return 1
		}
	} else {
		b, err := hex.DecodeString(*seckeyHex)
		if err != nil || len(b) != 32 {
			fmt.Fprintln(os.Stderr, "seckey must be 32 bytes of hex")
			return 2
		}
		copy(seckey[:], b)
	}

	kp, err := secp256k1.NewKeypair(ctx, &seckey)
	if err != nil {
		logger.Error("failed to derive keypair", "err", err)
		return 1
	}
	xo := kp.XOnlyPubKey()
	xoBytes := xo.Bytes()

	fmt.Printf("seckey: %x\n", seckey)
	fmt.Printf("pubkey: %x\n", xoBytes)
	return 0
}

func cmdSign(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	seckeyHex := fs.String("seckey", "", "32-byte hex secret key")
	msgHex := fs.String("msg", "", "32-byte hex message hash")
	auxHex := fs.String("aux", "", "optional 32-byte hex aux randomness")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	seckey, err := decode32(*seckeyHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -seckey:", err)
		return 2
	}
	msg, err := decode32(*msgHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -msg:", err)
		return 2
	}
	var auxPtr *[32]byte
	if *auxHex != "" {
		aux, err := decode32(*auxHex)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad -aux:", err)
			return 2
		}
		auxPtr = &aux
	}

	ctx, err := secp256k1.NewContext(rand.Reader)
	if err != nil {
		logger.Error("failed to build context", "err", err)
		return 1
	}
	kp, err := secp256k1.NewKeypair(ctx, &seckey)
	if err != nil {
		logger.Error("invalid secret key", "err", err)
		return 1
	}

	sig, ok := secp256k1.Sign32(ctx, &msg, kp, auxPtr)
	if !ok {
		logger.Error("signing failed", "err", secp256k1.ErrZeroNonce)
		return 1
	}
	fmt.Printf("sig: %x\n", sig)
	return 0
}

func cmdVerify(logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	pubkeyHex := fs.String("pubkey", "", "32-byte hex x-only public key")
	msgHex := fs.String("msg", "", "32-byte hex message hash")
	sigHex := fs.String("sig", "", "64-byte hex signature")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	pubkeyBytes, err := decode32(*pubkeyHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -pubkey:", err)
		return 2
	}
	msg, err := decode32(*msgHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -msg:", err)
		return 2
	}
	sigBytes, err := hex.DecodeString(*sigHex)
	if err != nil || len(sigBytes) != 64 {
		fmt.Fprintln(os.Stderr, "-sig must be 64 bytes of hex")
		return 2
	}
	var sig [64]byte
	copy(sig[:], sigBytes)

	pubkey, err := secp256k1.XOnlyPubKeyFromBytes(&pubkeyBytes)
	if err != nil {
		logger.Error("invalid public key", "err", err)
		return 1
	}

	if err := secp256k1.VerifyErr(&sig, msg[:], pubkey); err != nil {
		logger.Error("verification failed", "err", err)
		fmt.Println("invalid")
		return 1
	}
	fmt.Println("valid")
	return 0
}

func decode32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
