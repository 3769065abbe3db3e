package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens a KMS keeper used to unwrap the master key at startup when
// the deployment keeps the master key wrapped under a cloud KMS or Vault
// transit key instead of plain in the environment.
type KMSService interface {
	// OpenKeeper opens a decrypter for the configured KMS provider.
	// Returns an error if the key URI is invalid or the connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSDecrypter, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSDecrypter, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
