package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip32"
)

const (
	// EthDerivationPath is used for every EVM network.
	EthDerivationPath = "m/44'/60'/0'/0/0"
	// SolDerivationPath matches Phantom and solana-keygen's default account.
	SolDerivationPath = "m/44'/501'/0'/0'"
)

// deriveEthereumKey walks a BIP-32 secp256k1 path from seed.
func deriveEthereumKey(seed []byte, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	for _, index := range path {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child %d: %w", index, err)
		}
	}

	privateKey, err := crypto.ToECDSA(key.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDSA key: %w", err)
	}
	return privateKey, nil
}

// ed25519Key is a SLIP-10 node. Only hardened children exist on this curve.
type ed25519Key struct {
	key       []byte
	chainCode []byte
}

func newEd25519Master(seed []byte) ed25519Key {
	sum := hmacSHA512([]byte("ed25519 seed"), seed)
	return ed25519Key{key: sum[:32], chainCode: sum[32:]}
}

func (k ed25519Key) child(index uint32) ed25519Key {
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, k.key...)
	data = binary.BigEndian.AppendUint32(data, index)

	sum := hmacSHA512(k.chainCode, data)
	return ed25519Key{key: sum[:32], chainCode: sum[32:]}
}

// deriveSolanaKey walks a SLIP-10 ed25519 path from seed.
func deriveSolanaKey(seed []byte, path string) (solana.PrivateKey, error) {
	indexes, err := parseHardenedPath(path)
	if err != nil {
		return nil, err
	}

	node := newEd25519Master(seed)
	for _, index := range indexes {
		node = node.child(index)
	}

	return solana.PrivateKey(ed25519.NewKeyFromSeed(node.key)), nil
}

// parseHardenedPath parses paths such as m/44'/501'/0'/0'. Every segment must be hardened.
func parseHardenedPath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid derivation path %q", path)
	}

	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if !strings.HasSuffix(part, "'") && !strings.HasSuffix(part, "h") {
			return nil, fmt.Errorf("ed25519 path segment %q must be hardened", part)
		}
		n, err := strconv.ParseUint(part[:len(part)-1], 10, 31)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %w", part, err)
		}
		indexes = append(indexes, uint32(n)+bip32.FirstHardenedChild)
	}
	return indexes, nil
}

func hmacSHA512(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}
