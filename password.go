package accounts

import (
	"crypto/rand"
	"math/big"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultPasswordLength is the length of generated one-time passwords.
const DefaultPasswordLength = 10

const (
	passwordLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
)

// GeneratePassword returns a random alphanumeric password of the given
// length containing at least one digit. It draws from crypto/rand.
func GeneratePassword(length int) (string, error) {
	if length < 1 {
		length = DefaultPasswordLength
	}

	alphabet := passwordLetters + passwordDigits
	out := make([]byte, length)
	hasDigit := false

	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read random source")
		}
		out[i] = alphabet[n.Int64()]
		if out[i] >= '0' && out[i] <= '9' {
			hasDigit = true
		}
	}

	if !hasDigit {
		pos, err := rand.Int(rand.Reader, big.NewInt(int64(length)))
		if err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read random source")
		}
		d, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordDigits))))
		if err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read random source")
		}
		out[pos.Int64()] = passwordDigits[d.Int64()]
	}

	return string(out), nil
}
