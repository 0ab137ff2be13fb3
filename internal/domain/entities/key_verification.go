package entities

// KeyVerification is the result of probing an SSH key with a passphrase.
type KeyVerification int

const (
	// KeyVerificationUnknown means the probe could not decide, e.g. the key is unreadable.
	KeyVerificationUnknown KeyVerification = iota
	KeyVerificationGood
	KeyVerificationBad
)

func (it KeyVerification) String() string {
	switch it {
	case KeyVerificationGood:
		return "good"
	case KeyVerificationBad:
		return "bad"
	default:
		return "unknown"
	}
}

// CredentialSource records where the broker found an adopted credential.
type CredentialSource string

const (
	SourceKnown    CredentialSource = "known"
	SourceReused   CredentialSource = "reused"
	SourceDefault  CredentialSource = "default"
	SourcePrompted CredentialSource = "prompted"
)
