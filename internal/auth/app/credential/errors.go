package credential

import "errors"

var (
	ErrRequestNil         = errors.New("request is required")
	ErrCredentialRejected = errors.New("credentials rejected by auth provider")
	ErrSessionCreation    = errors.New("failed to create session")
)
