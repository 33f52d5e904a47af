package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/sha3"
)

// GenerateBookingHash генерирует уникальный идентификатор бронирования:
// keccak256 от случайного числа [10000, 20000) и текущего времени,
// 0x-префиксованный hex. Уникальность гарантируется не здесь, а unique
// constraint при сохранении; коллизия ведет к conflict и повторной
// генерации на стороне вызывающего кода.
func GenerateBookingHash() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("crypto: failed to generate random code: %w", err)
	}
	randomCode := n.Int64() + 10000

	seed := fmt.Sprintf("%d%d", randomCode, time.Now().UnixMilli())

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(seed))
	return "0x" + hex.EncodeToString(h.Sum(nil)), nil
}
