package common

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func Password2Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordBcryptCost)
	return string(hashed), err
}

func ValidatePasswordAndHash(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const serialCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSerialCode returns an 8 character upper-case base36 code.
// Uniqueness is the caller's problem (settings creation retries on collision).
func GenerateSerialCode() string {
	code := make([]byte, 8)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(serialCharset))))
		if err != nil {
			// crypto/rand failing means the platform is broken; nothing
			// sensible to degrade to for an identity code.
			FatalLog(err)
		}
		code[i] = serialCharset[n.Int64()]
	}
	return string(code)
}
