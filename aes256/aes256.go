// Package aes256 encrypts and decrypts text in the OpenSSL "enc -aes-256-cbc -md md5"
// format so payloads can be exchanged with other languages.
//
// Layout (before base64):
//
//	"Salted__" | salt(8) | AES-256-CBC ciphertext (PKCS#7 padded)
//
// Key and IV are derived from passphrase+salt with chained MD5 digests
// (OpenSSL EVP_BytesToKey, one iteration). There is no integrity check: a
// wrong passphrase decrypts to garbage.
package aes256

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	blockSize = aes.BlockSize
	keyLen    = 32
	ivLen     = 16
	saltLen   = 8
)

var (
	ErrMalformed  = errors.New("aes256: malformed payload")
	ErrNoSalt     = errors.New("aes256: missing Salted__ marker")
	ErrBadPadding = errors.New("aes256: invalid padding")

	marker = []byte("Salted__")
)

// Encrypt encrypts plaintext with a key derived from passphrase and a fresh
// random salt. It only fails when the system random source does.
func Encrypt(plaintext, passphrase string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("aes256: read salt: %w", err)
	}
	return encryptWithSalt([]byte(plaintext), passphrase, salt), nil
}

// Decrypt is the lenient counterpart of Encrypt: anything that is not a
// well-formed salted payload yields "".
func Decrypt(encoded, passphrase string) string {
	b, err := Open(encoded, passphrase)
	if err != nil {
		return ""
	}
	return string(b)
}

// Open decrypts encoded and reports why it could not.
// Padding is trimmed by the value of the last byte; a zero or oversized
// value yields an empty result rather than an error.
func Open(encoded, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw) < len(marker) || !bytes.Equal(raw[:len(marker)], marker) {
		return nil, ErrNoSalt
	}
	if len(raw) < len(marker)+saltLen {
		return nil, ErrMalformed
	}
	salt := raw[len(marker) : len(marker)+saltLen]
	body := raw[len(marker)+saltLen:]
	if len(body) == 0 {
		return []byte{}, nil
	}
	if len(body)%blockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block aligned", ErrMalformed)
	}

	key, iv := deriveKeyAndIV([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, body)
	return trim(out), nil
}

func encryptWithSalt(plaintext []byte, passphrase string, salt []byte) string {
	key, iv := deriveKeyAndIV([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		// key is always keyLen bytes
		panic(err)
	}
	padded := pad(plaintext)

	out := make([]byte, len(marker)+saltLen+len(padded))
	copy(out, marker)
	copy(out[len(marker):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(marker)+saltLen:], padded)
	return base64.StdEncoding.EncodeToString(out)
}

// deriveKeyAndIV implements EVP_BytesToKey(MD5, count=1).
func deriveKeyAndIV(passphrase, salt []byte) (key, iv []byte) {
	var d, prev []byte
	for len(d) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		d = append(d, prev...)
	}
	return d[:keyLen], d[keyLen : keyLen+ivLen]
}

func pad(b []byte) []byte {
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func trim(b []byte) []byte {
	n := int(b[len(b)-1])
	if n == 0 || n > len(b) {
		return []byte{}
	}
	return b[:len(b)-n]
}
