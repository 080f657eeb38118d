package wallet

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"

	"github.com/chinmay1088/emptier/crypto"
	"github.com/chinmay1088/emptier/errs"
)

var (
	ErrNoWallet = &errs.Error{
		Code:       "NO_WALLET",
		Message:    "no wallet found",
		Kind:       errs.KindConnection,
		Suggestion: "create one with 'emptier init' or import one with 'emptier recovery-phrase import'",
		ExitCode:   errs.ExitNotFound,
	}

	ErrWalletExists = &errs.Error{
		Code:       "WALLET_EXISTS",
		Message:    "a wallet already exists",
		Kind:       errs.KindValidation,
		Suggestion: "pass --force to replace it; the current recovery phrase will be lost",
		ExitCode:   errs.ExitInput,
	}

	ErrWrongPassword = &errs.Error{
		Code:     "WRONG_PASSWORD",
		Message:  "wrong password",
		Kind:     errs.KindConnection,
		ExitCode: errs.ExitAuth,
	}

	ErrLocked = &errs.Error{
		Code:       "WALLET_LOCKED",
		Message:    "wallet is locked",
		Kind:       errs.KindConnection,
		Suggestion: "unlock it with your password first",
		ExitCode:   errs.ExitAuth,
	}

	ErrInvalidMnemonic = &errs.Error{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid recovery phrase",
		Kind:     errs.KindValidation,
		ExitCode: errs.ExitInput,
	}
)

// Manager handles the encrypted vault and key derivation. The recovery phrase
// is only held in memory while unlocked.
type Manager struct {
	vaultPath string
	params    crypto.Params
	vault     *crypto.Vault
	mnemonic  string
	mu        sync.RWMutex
}

// NewManager creates a manager for the vault at vaultPath.
func NewManager(vaultPath string) *Manager {
	return &Manager{vaultPath: vaultPath, params: crypto.DefaultParams()}
}

// WithParams overrides the scrypt cost used for new vaults.
func (m *Manager) WithParams(params crypto.Params) *Manager {
	m.params = params
	return m
}

// VaultPath returns the location of the vault file.
func (m *Manager) VaultPath() string {
	return m.vaultPath
}

// VaultExists checks if a vault file exists
func (m *Manager) VaultExists() bool {
	_, err := os.Stat(m.vaultPath)
	return err == nil
}

// Initialize creates a new wallet with a fresh 24-word mnemonic and returns it.
func (m *Manager) Initialize(password string) (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	if err := m.store(mnemonic, password); err != nil {
		return "", err
	}
	return mnemonic, nil
}

// ImportFromMnemonic imports a wallet from an existing mnemonic
func (m *Manager) ImportFromMnemonic(mnemonic, password string) error {
	mnemonic = NormalizeMnemonic(mnemonic)

	if !bip39.IsMnemonicValid(mnemonic) {
		return invalidMnemonic(mnemonic)
	}
	return m.store(mnemonic, password)
}

func invalidMnemonic(mnemonic string) error {
	typos := FindTypos(mnemonic)
	if len(typos) == 0 {
		return errs.WithSuggestion(ErrInvalidMnemonic, "check the word order and the number of words (12 or 24)")
	}

	hints := make([]string, 0, len(typos))
	for _, t := range typos {
		if t.Suggestion != "" {
			hints = append(hints, fmt.Sprintf("word %d '%s': did you mean '%s'?", t.Position, t.Word, t.Suggestion))
		} else {
			hints = append(hints, fmt.Sprintf("word %d '%s' is not a recovery phrase word", t.Position, t.Word))
		}
	}
	return errs.WithSuggestion(ErrInvalidMnemonic, strings.Join(hints, "; "))
}

func (m *Manager) store(mnemonic, password string) error {
	if password == "" {
		return errs.WithSuggestion(errs.ErrInvalidArgument, "the password must not be empty")
	}

	vault, err := crypto.NewVaultWithParams(mnemonic, password, m.params)
	if err != nil {
		return fmt.Errorf("failed to create vault: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.vaultPath), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := m.saveVault(vault); err != nil {
		return fmt.Errorf("failed to save vault: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.vault = vault
	m.mnemonic = mnemonic
	return nil
}

// Unlock unlocks the wallet with the provided password
func (m *Manager) Unlock(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vault == nil {
		vault, err := m.loadVault()
		if err != nil {
			return err
		}
		m.vault = vault
	}

	mnemonic, err := m.vault.Decrypt(password)
	if err != nil {
		if errors.Is(err, crypto.ErrWrongPassword) {
			return ErrWrongPassword
		}
		return fmt.Errorf("failed to decrypt vault: %w", err)
	}

	m.mnemonic = mnemonic
	return nil
}

// Lock clears the recovery phrase from memory.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mnemonic = ""
}

// IsUnlocked returns whether the wallet is currently unlocked
func (m *Manager) IsUnlocked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mnemonic != ""
}

// Mnemonic returns the current mnemonic (only if unlocked)
func (m *Manager) Mnemonic() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.mnemonic == "" {
		return "", ErrLocked
	}
	return m.mnemonic, nil
}

func (m *Manager) seed() ([]byte, error) {
	mnemonic, err := m.Mnemonic()
	if err != nil {
		return nil, err
	}
	return bip39.NewSeed(mnemonic, ""), nil
}

// EthereumKey returns the key shared by every EVM network.
func (m *Manager) EthereumKey() (*ecdsa.PrivateKey, error) {
	seed, err := m.seed()
	if err != nil {
		return nil, err
	}

	path, err := accounts.ParseDerivationPath(EthDerivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse derivation path: %w", err)
	}

	key, err := deriveEthereumKey(seed, path)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Ethereum key: %w", err)
	}
	return key, nil
}

func (m *Manager) EthereumAddress() (common.Address, error) {
	key, err := m.EthereumKey()
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey), nil
}

func (m *Manager) SolanaKey() (solana.PrivateKey, error) {
	seed, err := m.seed()
	if err != nil {
		return nil, err
	}

	key, err := deriveSolanaKey(seed, SolDerivationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Solana key: %w", err)
	}
	return key, nil
}

func (m *Manager) SolanaAddress() (solana.PublicKey, error) {
	key, err := m.SolanaKey()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}

func (m *Manager) saveVault(vault *crypto.Vault) error {
	data, err := json.Marshal(vault)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}

	if err := os.WriteFile(m.vaultPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}
	return nil
}

func (m *Manager) loadVault() (*crypto.Vault, error) {
	data, err := os.ReadFile(m.vaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoWallet
		}
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	var vault crypto.Vault
	if err := json.Unmarshal(data, &vault); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault: %w", err)
	}
	return &vault, nil
}
