package jwtx

// Signer is our interface for anything that can mint tokens for a subject.
type Signer interface {
	Alg() string
	Sign(subject string, kind Kind) (string, error)
	SignWithUsername(subject, username string, kind Kind) (string, error)
}

// Codec signs and verifies with the same key material.
type Codec interface {
	Signer
	Verifier
}
