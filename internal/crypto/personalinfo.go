// Package crypto реализует шифрование персональных данных гостя и
// генерацию booking hash. Ключом шифрования служит сам booking hash:
// потеря хэша означает потерю доступа к данным, это граница доступа.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

var (
	// ErrNoBookingHash возвращается при попытке шифрования без ключа
	ErrNoBookingHash = errors.New("crypto: booking hash is required")

	// ErrEncrypt возвращается при внутренней ошибке шифрования
	ErrEncrypt = errors.New("crypto: failed to encrypt personal info")
)

// Параметры вывода ключа из booking hash. Соль фиксирована: ключевой
// материал (keccak256-хэш) уже высокоэнтропийный и уникален per-booking.
var kdfSalt = []byte("smc-chain-booking/personal-info/v1")

const (
	kdfIterations = 4096
	kdfKeyLen     = 32
)

// EncryptPersonalInfo шифрует персональные данные гостя.
// Данные сериализуются в JSON, кодируются в hex и шифруются AES-256-GCM
// с ключом, выведенным из bookingHash. Результат - hex-строка
// (nonce || ciphertext).
func EncryptPersonalInfo(info domain.PersonalInfo, bookingHash string) (string, error) {
	if bookingHash == "" {
		return "", ErrNoBookingHash
	}

	plain, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("%w: marshal personal info: %v", ErrEncrypt, err)
	}
	hexEncoded := []byte(hex.EncodeToString(plain))

	aead, err := newAEAD(bookingHash)
	if err != nil {
		return "", fmt.Errorf("%w: init cipher: %v", ErrEncrypt, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %v", ErrEncrypt, err)
	}

	sealed := aead.Seal(nonce, nonce, hexEncoded, nil)
	return hex.EncodeToString(sealed), nil
}

// DecryptPersonalInfo расшифровывает персональные данные гостя.
// Любая ошибка (неверный ключ, поврежденные данные, некорректный hex или
// JSON) трактуется как "данные недоступны": возвращается пустой объект,
// а не ошибка. Это штатная ситуация для бронирований с утерянным хэшем.
func DecryptPersonalInfo(ciphertext, bookingHash string) domain.PersonalInfo {
	if ciphertext == "" || bookingHash == "" {
		return domain.PersonalInfo{}
	}

	sealed, err := hex.DecodeString(ciphertext)
	if err != nil {
		return domain.PersonalInfo{}
	}

	aead, err := newAEAD(bookingHash)
	if err != nil {
		return domain.PersonalInfo{}
	}
	if len(sealed) < aead.NonceSize() {
		return domain.PersonalInfo{}
	}

	nonce, data := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	hexEncoded, err := aead.Open(nil, nonce, data, nil)
	if err != nil {
		return domain.PersonalInfo{}
	}

	plain, err := hex.DecodeString(string(hexEncoded))
	if err != nil {
		return domain.PersonalInfo{}
	}

	var info domain.PersonalInfo
	if err := json.Unmarshal(plain, &info); err != nil {
		return domain.PersonalInfo{}
	}
	return info
}

func newAEAD(bookingHash string) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(bookingHash), kdfSalt, kdfIterations, kdfKeyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
