package doccache

import "github.com/unkn0wn-root/doccache/aes256"

// FormatKey returns "{source}:{objectTypeOrBucket}:{id}".
// No escaping is applied, so keys are only unambiguous when the first two
// segments are free of ':'. The format is shared with non-Go clients of the
// same cache tier and cannot change without a migration.
//
// An empty segment stays empty ("s3::key"). Python clients of the same tier
// render a missing segment as "None" ("s3:None:key"), so those keys never
// match; neither side fills such keys, so no entry is lost.
func FormatKey(source, objectTypeOrBucket, id string) string {
	return source + ":" + objectTypeOrBucket + ":" + id
}

// Decrypt decrypts a field payload produced by aes256.Encrypt (or OpenSSL
// "enc -aes-256-cbc -md md5"). Malformed input yields "".
func Decrypt(encoded, passphrase string) string {
	return aes256.Decrypt(encoded, passphrase)
}
