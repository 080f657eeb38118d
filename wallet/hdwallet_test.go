package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SLIP-0010 ed25519 test vector 1.
func TestEd25519Derivation(t *testing.T) {
	t.Parallel()

	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	master := newEd25519Master(seed)
	assert.Equal(t, "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7", hex.EncodeToString(master.key))
	assert.Equal(t, "90046a93de5380a72b5e45010748567d5ea02bbf6522f979e05c0d8d8ca9fffb", hex.EncodeToString(master.chainCode))

	child := master.child(0x80000000)
	assert.Equal(t, "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3", hex.EncodeToString(child.key))
	assert.Equal(t, "8b59aa11380b624e81507a27fedda59fea6d0b779a778918a2fd3590e16e9c69", hex.EncodeToString(child.chainCode))
}

func TestParseHardenedPath(t *testing.T) {
	t.Parallel()

	indexes, err := parseHardenedPath(SolDerivationPath)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x8000002c, 0x800001f5, 0x80000000, 0x80000000}, indexes)

	for _, bad := range []string{"", "m", "44'/501'", "m/44'/501'/0/0", "m/x'"} {
		_, err := parseHardenedPath(bad)
		assert.Error(t, err, bad)
	}
}

func TestDeriveSolanaKey_Deterministic(t *testing.T) {
	t.Parallel()

	seed := make([]byte, 64)
	a, err := deriveSolanaKey(seed, SolDerivationPath)
	require.NoError(t, err)
	b, err := deriveSolanaKey(seed, SolDerivationPath)
	require.NoError(t, err)
	c, err := deriveSolanaKey(seed, "m/44'/501'/1'/0'")
	require.NoError(t, err)

	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.NotEqual(t, a.PublicKey(), c.PublicKey())
	assert.Len(t, a, 64)
}
