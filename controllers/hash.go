package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/pbkdf2"
)

const hashRounds = 100000

// passwordCredential is the JSON document stored in the users.password
// column. Plaintext never touches the store.
type passwordCredential struct {
	Salt string `json:"salt"`
	Hash string `json:"hash"`
}

func getSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashRounds, 32, sha256.New)
	return hex.EncodeToString(key)
}

// encodeCredential salts and hashes a plaintext password into the stored
// credential form.
func encodeCredential(password string) (string, error) {
	salt, err := getSalt()
	if err != nil {
		return "", err
	}
	cred, err := json.Marshal(passwordCredential{
		Salt: salt,
		Hash: hashPassword(password, salt),
	})
	if err != nil {
		return "", err
	}
	return string(cred), nil
}

// checkCredential compares a plaintext password against a stored credential.
func checkCredential(password, stored string) bool {
	var cred passwordCredential
	if err := json.Unmarshal([]byte(stored), &cred); err != nil {
		return false
	}
	hashed := hashPassword(password, cred.Salt)
	return subtle.ConstantTimeCompare([]byte(hashed), []byte(cred.Hash)) == 1
}
