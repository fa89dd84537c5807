package pass

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 32
	iterations = 100000
	keyLen     = 32
)

// HashPassword хэширует пароль по PBKDF2-SHA256 со случайной солью.
// Возвращает соль и хэш в hex
func HashPassword(password string) (saltHex string, hashHex string, err error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", "", err
	}

	hash := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)

	return hex.EncodeToString(salt), hex.EncodeToString(hash), nil
}

// VerifyPassword сверяет пароль с сохранённой солью и хэшем
func VerifyPassword(saltHex, hashHex, password string) bool {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	stored, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)

	return subtle.ConstantTimeCompare(hash, stored) == 1
}
