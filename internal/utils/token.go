package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateConfirmationToken returns an unguessable url-safe token used
// to prove control of the email address given at submission time.
func GenerateConfirmationToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform source is broken;
		// nothing sensible to do but panic.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// GenerateSessionID returns a random identifier for a visitor's
// analyse-chat session.
func GenerateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
