package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID создает короткий уникальный ID с префиксом, например "client_3f9a0c1d".
func GenerateID(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}
