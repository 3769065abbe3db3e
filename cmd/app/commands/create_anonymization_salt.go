package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// saltBytes is the length of a generated anonymization salt before encoding.
const saltBytes = 32

// RunCreateAnonymizationSalt generates a random deployment-wide salt for
// identifier anonymization.
//
// The salt must stay stable for the deployment's lifetime: anonymized tokens
// are only join-able across exports while the salt is unchanged. Changing it
// severs the link between old and new tokens, which is also the documented
// way to intentionally break historical correlation.
func RunCreateAnonymizationSalt() error {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate anonymization salt: %w", err)
	}

	fmt.Println("# Anonymization Salt Configuration")
	fmt.Println("# Copy this environment variable to your .env file or secrets manager")
	fmt.Println()
	fmt.Printf("ANONYMIZATION_SALT=\"%s\"\n", base64.StdEncoding.EncodeToString(salt))

	return nil
}
