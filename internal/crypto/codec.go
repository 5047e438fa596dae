// Package crypto шифрует содержимое записей хранилища.
//
// Ключ каждой учётной записи выводится через HKDF-SHA256 из серверного
// мастер-секрета и ID учётной записи и нигде не хранится. Содержимое
// шифруется AES-256-GCM со случайным nonce; в AAD входят ID учётной записи
// и ID записи, поэтому шифртекст нельзя перенести в чужую запись.
//
// Ограничение: тот, у кого есть и БД, и мастер-секрет, может расшифровать
// данные. Тот, у кого есть только БД, — нет.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	keyLen = 32 // AES-256

	// MinMasterKeyLen — минимальная длина мастер-секрета в байтах.
	MinMasterKeyLen = 16

	hkdfInfo = "valtify/item-payload/v1"
)

var (
	// ErrDecrypt — шифртекст повреждён, не от этой записи или ключ не тот.
	ErrDecrypt = errors.New("payload decryption failed")
	// ErrShortMasterKey — мастер-секрет короче MinMasterKeyLen.
	ErrShortMasterKey = errors.New("payload master key too short")
)

// PayloadCodec шифрует и расшифровывает содержимое записей.
type PayloadCodec struct {
	master []byte
}

// NewPayloadCodec создаёт кодек с мастер-секретом.
func NewPayloadCodec(masterKey []byte) (*PayloadCodec, error) {
	if len(masterKey) < MinMasterKeyLen {
		return nil, ErrShortMasterKey
	}
	m := make([]byte, len(masterKey))
	copy(m, masterKey)
	return &PayloadCodec{master: m}, nil
}

// accountKey выводит ключ учётной записи.
func (c *PayloadCodec) accountKey(accountID string) ([]byte, error) {
	key := make([]byte, keyLen)
	r := hkdf.New(sha256.New, c.master, []byte(accountID), []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (c *PayloadCodec) aead(accountID string) (cipher.AEAD, error) {
	key, err := c.accountKey(accountID)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func additionalData(accountID, itemID string) []byte {
	return []byte(accountID + "|" + itemID)
}

// Seal шифрует plain для записи itemID учётной записи accountID.
// Возвращает шифртекст и nonce.
func (c *PayloadCodec) Seal(accountID, itemID string, plain []byte) ([]byte, []byte, error) {
	gcm, err := c.aead(accountID)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	out := gcm.Seal(nil, nonce, plain, additionalData(accountID, itemID))
	return out, nonce, nil
}

// Open расшифровывает шифртекст, полученный от Seal с теми же accountID и itemID.
func (c *PayloadCodec) Open(accountID, itemID string, ciphertext, nonce []byte) ([]byte, error) {
	gcm, err := c.aead(accountID)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrDecrypt
	}
	plain, err := gcm.Open(nil, nonce, ciphertext, additionalData(accountID, itemID))
	if err != nil {
		return nil, ErrDecrypt
	}
	if plain == nil {
		plain = []byte{}
	}
	return plain, nil
}
