package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/scrypt"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// PasswordAlgorithm names the key-derivation function used for new digests.
type PasswordAlgorithm string

const (
	// AlgorithmScrypt produces "<hex salt>:<hex key>" digests.
	AlgorithmScrypt PasswordAlgorithm = "scrypt"

	// AlgorithmArgon2id produces PHC formatted "$argon2id$..." digests via go-pwdhash.
	AlgorithmArgon2id PasswordAlgorithm = "argon2id"
)

// scrypt parameters. N=2^14, r=8, p=1 costs about 16 MiB and a few tens of
// milliseconds per derivation on current hardware.
const (
	scryptSaltLength = 16
	scryptKeyLength  = 64
	scryptN          = 1 << 14
	scryptR          = 8
	scryptP          = 1

	digestSeparator = ":"
	argon2idPrefix  = "$argon2id$"

	// argon2idMaxMemoryKiB caps the m parameter accepted from a stored digest at
	// four times the interactive policy (64 MiB).
	argon2idMaxMemoryKiB = 4 * 64 * 1024
	argon2idMaxTime      = 16
	argon2idMaxThreads   = 64
)

type passwordService struct {
	algorithm PasswordAlgorithm
	argon2    *pwdhash.PasswordHasher
	random    io.Reader
}

// NewPasswordService creates a PasswordService that hashes with algorithm.
// Verification accepts digests of either algorithm so stored credentials keep
// working when the configured algorithm changes.
func NewPasswordService(algorithm PasswordAlgorithm) (PasswordService, error) {
	switch algorithm {
	case AlgorithmScrypt, AlgorithmArgon2id:
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unsupported password algorithm %q", algorithm)
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create argon2id hasher")
	}

	return &passwordService{
		algorithm: algorithm,
		argon2:    hasher,
		random:    rand.Reader,
	}, nil
}

// Hash derives a digest from password using the configured algorithm.
func (s *passwordService) Hash(password string) (string, error) {
	if s.algorithm == AlgorithmArgon2id {
		digest, err := s.argon2.Hash([]byte(password))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to hash password")
		}
		return digest, nil
	}

	salt := make([]byte, scryptSaltLength)
	if _, err := io.ReadFull(s.random, salt); err != nil {
		return "", apperrors.Wrap(err, "failed to generate salt")
	}

	key, err := deriveScryptKey(password, salt)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + digestSeparator + hex.EncodeToString(key), nil
}

// Verify dispatches on the digest format and compares in constant time.
func (s *passwordService) Verify(password, digest string) bool {
	if strings.HasPrefix(digest, argon2idPrefix) {
		return s.verifyArgon2id(password, digest)
	}
	return verifyScrypt(password, digest)
}

func (s *passwordService) verifyArgon2id(password, digest string) (ok bool) {
	if !validArgon2idDigest(digest) {
		return false
	}

	// argon2.IDKey panics on parameters the checks above do not anticipate.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	matched, err := s.argon2.Verify([]byte(password), digest)
	return err == nil && matched
}

// validArgon2idDigest checks the PHC layout "$argon2id$v=19$m=..,t=..,p=..$salt$hash"
// and rejects cost parameters that are zero or beyond what this service ever writes.
func validArgon2idDigest(digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}
	if !strings.HasPrefix(parts[2], "v=") || parts[4] == "" || parts[5] == "" {
		return false
	}

	params := make(map[string]uint64, 3)
	for _, pair := range strings.Split(parts[3], ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return false
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return false
		}
		params[key] = n
	}

	m, t, p := params["m"], params["t"], params["p"]
	return len(params) == 3 &&
		m >= 8*p && m <= argon2idMaxMemoryKiB &&
		t >= 1 && t <= argon2idMaxTime &&
		p >= 1 && p <= argon2idMaxThreads
}

func verifyScrypt(password, digest string) bool {
	saltHex, keyHex, found := strings.Cut(digest, digestSeparator)
	if !found || saltHex == "" || keyHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	computed, err := deriveScryptKey(password, salt)
	if err != nil {
		return false
	}

	if len(computed) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare(computed, stored) == 1
}

func deriveScryptKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive scrypt key: %w", err)
	}
	return key, nil
}
