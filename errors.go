package doccache

import "fmt"

// SourceError describes a failed backing-store lookup. It is logged and
// handed to Hooks; GetDocument itself reports the lookup as a miss.
type SourceError struct {
	Source SourceType
	Target string // collection or bucket
	Key    string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s/%s: %v", e.Source, e.Target, e.Key, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
