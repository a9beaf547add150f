package model

// Identity is the caller as resolved from the identity provider's token.
// The zero value is the anonymous caller.
type Identity struct {
	UserID string
	Email  string
}

// Known reports whether the caller has been identified.
func (i Identity) Known() bool {
	return i.UserID != ""
}
