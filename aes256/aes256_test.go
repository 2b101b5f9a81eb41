package aes256

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Produced with:
//
//	printf '%s' "$text" | openssl enc -aes-256-cbc -md md5 -S 0102030405060708 -pass pass:'my secret passphrase'
//
// then prefixed with "Salted__" and the salt.
var opensslVectors = []struct {
	name, plaintext, encoded string
}{
	{"ascii", "hello world", "U2FsdGVkX18BAgMEBQYHCPQ1glMcSXw8kQ/WkMVQXbo="},
	{"empty", "", "U2FsdGVkX18BAgMEBQYHCJyXfu4a3nAOTD4muPSxSfc="},
	{"block aligned", "0123456789abcdef", "U2FsdGVkX18BAgMEBQYHCOw8gY7EQAeVuj6tXhNm037s+QodrQzdRHI0QwdVjwJ1"},
	{"unicode", "héllo wörld ✓ 日本", "U2FsdGVkX18BAgMEBQYHCAXcxqkBuQyA6VUNtfN9qRrny1FO0w9PfuFW9UhzxzX+"},
}

const vectorPass = "my secret passphrase"

func TestDecryptOpenSSLVectors(t *testing.T) {
	for _, tc := range opensslVectors {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.plaintext, Decrypt(tc.encoded, vectorPass))
		})
	}
}

func TestEncryptWithFixedSaltMatchesOpenSSL(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for _, tc := range opensslVectors {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.encoded, encryptWithSalt([]byte(tc.plaintext), vectorPass, salt))
		})
	}
}

func TestDecryptRandomSaltOpenSSLPayload(t *testing.T) {
	// openssl enc -aes-256-cbc -md md5 -pass pass:account-key-1 -base64 -A
	got := Decrypt("U2FsdGVkX19WM8qT03C0l2gsxj5sGkUXziyWb4jlK7v92sFm93WaE6lBGUprIRCb", "account-key-1")
	assert.Equal(t, "a secret message body", got)
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"a",
		"exactly 16 bytes",
		strings.Repeat("x", 1000),
		"Grüße, 世界 🌍",
		"{\"subject\":\"test request 2\",\"body\":\"<p>hi</p>\"}",
	}
	passes := []string{"p", "my secret passphrase", "ключ-🔑"}
	for _, p := range passes {
		for _, text := range texts {
			enc, err := Encrypt(text, p)
			require.NoError(t, err)
			assert.Equal(t, text, Decrypt(enc, p))
		}
	}
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	a, err := Encrypt("same", "pass")
	require.NoError(t, err)
	b, err := Encrypt("same", "pass")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Equal(t, "Salted__", string(raw[:8]))
	assert.Len(t, raw, 8+8+16)
}

func TestDecryptWithoutMarkerIsEmpty(t *testing.T) {
	inputs := []string{
		base64.StdEncoding.EncodeToString([]byte("NotSalt_12345678abcdefghabcdefgh")),
		base64.StdEncoding.EncodeToString([]byte("short")),
		"",
		"%%% not base64 %%%",
	}
	for _, in := range inputs {
		for _, p := range []string{"p", vectorPass} {
			assert.Empty(t, Decrypt(in, p), "input %q", in)
		}
	}
}

func TestOpenReportsCause(t *testing.T) {
	_, err := Open("%%%", "p")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Open(base64.StdEncoding.EncodeToString([]byte("plain text here!")), "p")
	assert.ErrorIs(t, err, ErrNoSalt)

	truncated := base64.StdEncoding.EncodeToString([]byte("Salted__\x01\x02\x03"))
	_, err = Open(truncated, "p")
	assert.ErrorIs(t, err, ErrMalformed)

	unaligned := base64.StdEncoding.EncodeToString([]byte("Salted__12345678abc"))
	_, err = Open(unaligned, "p")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDeriveKeyAndIVLengths(t *testing.T) {
	key, iv := deriveKeyAndIV([]byte("pass"), []byte("saltsalt"))
	assert.Len(t, key, keyLen)
	assert.Len(t, iv, ivLen)
}

func TestPadTrim(t *testing.T) {
	for n := 0; n <= 2*blockSize; n++ {
		in := []byte(strings.Repeat("z", n))
		p := pad(in)
		require.Zero(t, len(p)%blockSize)
		require.Greater(t, len(p), n)
		assert.Equal(t, in, trim(p))
	}
	assert.Empty(t, trim([]byte{1, 2, 0}))
	assert.Empty(t, trim([]byte{1, 2, 9}))
}
