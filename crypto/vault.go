package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	ScryptN = 32768 // 2^15
	ScryptR = 8
	ScryptP = 1
	KeyLen  = 32 // AES-256 key length

	vaultVersion = 2
)

// ErrWrongPassword is returned when the vault cannot be opened with the given password.
var ErrWrongPassword = errors.New("wrong password or corrupted vault")

// Params are the scrypt cost parameters stored alongside the ciphertext.
type Params struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// DefaultParams returns the scrypt parameters used for new vaults.
func DefaultParams() Params {
	return Params{N: ScryptN, R: ScryptR, P: ScryptP}
}

// Vault is an encrypted recovery phrase. The AES-GCM tag is part of Data.
type Vault struct {
	Version int    `json:"version"`
	KDF     Params `json:"kdf"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

type VaultData struct {
	Mnemonic string `json:"mnemonic"`
	Version  int    `json:"version"`
}

func NewVault(mnemonic, password string) (*Vault, error) {
	return NewVaultWithParams(mnemonic, password, DefaultParams())
}

// NewVaultWithParams seals mnemonic under a key derived from password with the given scrypt cost.
func NewVaultWithParams(mnemonic, password string, params Params) (*Vault, error) {
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(password, salt, params)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clearBytes(key)

	data, err := json.Marshal(VaultData{Mnemonic: mnemonic, Version: vaultVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vault data: %w", err)
	}
	defer clearBytes(data)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return &Vault{
		Version: vaultVersion,
		KDF:     params,
		Salt:    salt,
		Nonce:   nonce,
		Data:    aesGCM.Seal(nil, nonce, data, nil),
	}, nil
}

// Decrypt returns the sealed mnemonic.
func (v *Vault) Decrypt(password string) (string, error) {
	params := v.KDF
	if params.N == 0 {
		// version 1 vaults did not record their parameters
		params = DefaultParams()
	}

	key, err := deriveKey(password, v.Salt, params)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer clearBytes(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return "", err
	}
	if len(v.Nonce) != aesGCM.NonceSize() {
		return "", ErrWrongPassword
	}

	plaintext, err := aesGCM.Open(nil, v.Nonce, v.Data, nil)
	if err != nil {
		return "", ErrWrongPassword
	}
	defer clearBytes(plaintext)

	var vaultData VaultData
	if err := json.Unmarshal(plaintext, &vaultData); err != nil {
		return "", fmt.Errorf("failed to deserialize vault data: %w", err)
	}

	return vaultData.Mnemonic, nil
}

func (v *Vault) ValidatePassword(password string) bool {
	_, err := v.Decrypt(password)
	return err == nil
}

func deriveKey(password string, salt []byte, params Params) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation failed: %w", err)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
