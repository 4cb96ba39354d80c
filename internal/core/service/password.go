package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}<>?"
)

// PasswordPolicy describes the complexity requirements for generated
// customer passwords.
type PasswordPolicy struct {
	Length     int
	MinUpper   int
	MinLower   int
	MinDigits  int
	MinSpecial int
}

// DefaultPasswordPolicy returns the policy used for customer signups:
// 12 characters with at least one of each character class.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		Length:     12,
		MinUpper:   1,
		MinLower:   1,
		MinDigits:  1,
		MinSpecial: 1,
	}
}

// GeneratePassword produces a fresh random password satisfying policy. It is
// a pure function over crypto/rand: no state is shared between calls, so
// concurrent registrations can never observe each other's passwords.
func GeneratePassword(policy PasswordPolicy) (string, error) {
	minTotal := policy.MinUpper + policy.MinLower + policy.MinDigits + policy.MinSpecial
	if policy.Length < minTotal {
		return "", fmt.Errorf("password policy: length %d cannot satisfy %d required characters", policy.Length, minTotal)
	}

	chars := make([]byte, 0, policy.Length)

	classes := []struct {
		set string
		min int
	}{
		{upperChars, policy.MinUpper},
		{lowerChars, policy.MinLower},
		{digitChars, policy.MinDigits},
		{specialChars, policy.MinSpecial},
	}
	for _, cl := range classes {
		for i := 0; i < cl.min; i++ {
			ch, err := randomChar(cl.set)
			if err != nil {
				return "", err
			}
			chars = append(chars, ch)
		}
	}

	all := upperChars + lowerChars + digitChars + specialChars
	for len(chars) < policy.Length {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}

	// Fisher-Yates shuffle so the required characters are not clustered at
	// predictable positions.
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		j := int(n.Int64())
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("generate password: %w", err)
	}
	return set[n.Int64()], nil
}

// countClass reports how many bytes of s belong to set. Used by tests to
// assert policy compliance.
func countClass(s, set string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(set, s[i]) >= 0 {
			count++
		}
	}
	return count
}
