package domain

import "errors"

var (
	ErrAuthentication       = errors.New("authentication failed")
	ErrBinNotFound          = errors.New("bin not found")
	ErrDeviceNotFound       = errors.New("device not found")
	ErrTransport            = errors.New("transport failure")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSecretNotFound       = errors.New("secret not found")
)
