package domain

import (
	"github.com/accordia/securecomm/internal/errors"
)

// Messaging error definitions.
//
// Recipient-side failures carry distinct reasons because a recipient's
// existence is not secret. Sender-side authentication deliberately collapses
// "wrong password" and "no key pair" into one error so callers cannot probe
// for account existence.
var (
	// ErrRecipientKeyNotFound indicates the recipient has no issued key pair.
	ErrRecipientKeyNotFound = errors.Wrap(errors.ErrNotFound, "recipient key not found")

	// ErrSenderAuthenticationFailed indicates the sender's private key could
	// not be unwrapped: wrong password or no key pair, indistinguishably.
	ErrSenderAuthenticationFailed = errors.Wrap(errors.ErrUnauthorized, "sender authentication failed")

	// ErrAccessDenied indicates the user is not authorized to mutate the
	// message (not the recipient for read marking, neither party for deletion).
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")

	// ErrMessageNotFound indicates the message does not exist.
	ErrMessageNotFound = errors.Wrap(errors.ErrNotFound, "message not found")

	// ErrKeyPairNotFound indicates the user has no issued key pair.
	ErrKeyPairNotFound = errors.Wrap(errors.ErrNotFound, "key pair not found")

	// ErrInvalidMessageType indicates an unknown message type.
	ErrInvalidMessageType = errors.Wrap(errors.ErrInvalidInput, "invalid message type")
)
