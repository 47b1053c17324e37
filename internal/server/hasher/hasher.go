// Package hasher provides one-way, salted password hashing utilising bcrypt.
package hasher

import "golang.org/x/crypto/bcrypt"

const cost int = 10

// Hasher hashes plaintext passwords and verifies candidates against stored
// hashes. Implementations hold no mutable state and are safe for concurrent
// use.
type Hasher interface {
	Hash(pwd []byte) (string, error)
	Compare(pwd []byte, hashed string) error
}

var _ Hasher = (*bcryptHasher)(nil)

type bcryptHasher struct{}

// New instantiates a bcrypt-based hasher implementation.
func New() Hasher {
	return &bcryptHasher{}
}

func (bh *bcryptHasher) Hash(pwd []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(pwd, cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func (bh *bcryptHasher) Compare(pwd []byte, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), pwd)
}
