package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// sessionSecretLength is the number of random bytes in a generated session secret.
const sessionSecretLength = 32

// SecretService produces and unwraps the server-wide session signing secret.
type SecretService interface {
	// GenerateSecret returns a new hex-encoded random secret suitable for SESSION_SECRET.
	GenerateSecret() (string, error)

	// WrapSecret encrypts secret with the keeper at keyURI and returns base64 ciphertext
	// suitable for SESSION_SECRET_CIPHERTEXT.
	WrapSecret(ctx context.Context, keyURI, secret string) (string, error)

	// ResolveSecret returns the signing secret. When ciphertext is non-empty it is
	// decrypted with the keeper at keyURI; otherwise plain is returned as-is.
	ResolveSecret(ctx context.Context, plain, ciphertext, keyURI string) ([]byte, error)
}

type secretService struct {
	kms KMSService
}

// NewSecretService creates a SecretService that unwraps secrets through kms.
func NewSecretService(kms KMSService) SecretService {
	return &secretService{kms: kms}
}

func (s *secretService) GenerateSecret() (string, error) {
	raw := make([]byte, sessionSecretLength)
	if _, err := rand.Read(raw); err != nil {
		return "", apperrors.Wrap(err, "failed to generate session secret")
	}
	return hex.EncodeToString(raw), nil
}

func (s *secretService) WrapSecret(ctx context.Context, keyURI, secret string) (out string, err error) {
	keeper, err := s.kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, []byte(secret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encrypt session secret")
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *secretService) ResolveSecret(
	ctx context.Context,
	plain, ciphertext, keyURI string,
) (secret []byte, err error) {
	if ciphertext == "" {
		if plain == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session secret is empty")
		}
		return []byte(plain), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session secret ciphertext is not valid base64")
	}

	keeper, err := s.kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	secret, err = keeper.Decrypt(ctx, decoded)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt session secret")
	}
	if len(secret) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "decrypted session secret is empty")
	}
	return secret, nil
}
