package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/accordia/securecomm/internal/crypto/domain"
	cryptoService "github.com/accordia/securecomm/internal/crypto/service"
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// for field encryption. Key material is zeroed from memory after encoding.
//
// Without a KMS key URI the key is printed hex-encoded for the MASTER_KEY
// environment variable. With one, the hex key is encrypted through the KMS
// first and printed as MASTER_KEY_WRAPPED plus the KMS_KEY_URI to reproduce
// the unwrap at startup.
//
// Security: Never use the base64key:// provider in production. Use cloud KMS
// providers (gcpkms, awskms, azurekeyvault, hashivault).
func RunCreateMasterKey(kmsKeyURI string) error {
	masterKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	hexKey := hex.EncodeToString(masterKey)

	if kmsKeyURI == "" {
		fmt.Println("# Master Key Configuration")
		fmt.Println("# Copy this environment variable to your .env file or secrets manager")
		fmt.Println()
		fmt.Printf("MASTER_KEY=\"%s\"\n", hexKey)
		fmt.Println()
		fmt.Println("# To keep the key wrapped under a KMS instead, rerun with --kms-key-uri")
		return nil
	}

	ctx := context.Background()

	kmsService := cryptoService.NewKMSService()
	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}

	// The decrypter interface covers startup unwrapping only; encryption
	// needs the keeper's Encrypt method.
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, []byte(hexKey))
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	fmt.Println("# Master Key Configuration (KMS Mode)")
	fmt.Println("# Copy these environment variables to your .env file or secrets manager")
	fmt.Println()
	fmt.Printf("KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Printf("MASTER_KEY_WRAPPED=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))

	return nil
}
