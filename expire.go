package doccache

import "time"

// ExpirySource reports the process-wide default expiration.
// A non-positive value disables expiration for every document type.
// It is consulted on every write, so implementations may change their answer
// at runtime.
type ExpirySource interface {
	DefaultExpiry() time.Duration
}

// StaticExpiry is a fixed default expiration.
type StaticExpiry time.Duration

func (s StaticExpiry) DefaultExpiry() time.Duration { return time.Duration(s) }

// ExpiryFunc adapts a function to ExpirySource.
type ExpiryFunc func() time.Duration

func (f ExpiryFunc) DefaultExpiry() time.Duration { return f() }

// ResolveTTL picks the expiration for a single write. 0 means no expiration.
//
//  1. def <= 0 disables expiration globally, overrides included.
//  2. accounts never expire.
//  3. a positive override wins.
//  4. otherwise def.
func ResolveTTL(def time.Duration, docType DocType, override time.Duration) time.Duration {
	if def <= 0 {
		return 0
	}
	if docType == DocAccounts {
		return 0
	}
	if override > 0 {
		return override
	}
	return def
}
