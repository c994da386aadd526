// Package hash seals user passwords before they are stored.
//
// Two schemes exist. AESSealer keeps passwords reversible under the process
// secret, which is what the stored data of existing deployments expects.
// BcryptSealer stores a salted one-way hash instead. Callers only ever use
// Matches to verify a password, so either scheme can back the same flows.
package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeAES    = "aes"
	SchemeBcrypt = "bcrypt"
)

type Sealer interface {
	Seal(plain string) (string, error)
	Matches(sealed, plain string) (bool, error)
}

func New(scheme string, secret []byte) (Sealer, error) {
	switch scheme {
	case "", SchemeAES:
		return NewAESSealer(secret)
	case SchemeBcrypt:
		return BcryptSealer{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

type BcryptSealer struct {
	Cost int
}

func (b BcryptSealer) Seal(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (b BcryptSealer) Matches(sealed, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(sealed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
