// Package kwargs validates option keys given to constructors and config tables.
package kwargs

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnexpectedKey is wrapped when a key is not in the allowed set.
	ErrUnexpectedKey = errors.New("unexpected keyword argument")
	// ErrForbiddenKey is wrapped when a key is in the forbidden set.
	ErrForbiddenKey = errors.New("forbidden keyword argument")
)

// EnsureIn fails unless key is allowed. A nil allowed set allows everything.
func EnsureIn(caller, key string, allowed []string) error {
	if allowed != nil && !slices.Contains(allowed, key) {
		return fmt.Errorf("%s got an %w %q", caller, ErrUnexpectedKey, key)
	}
	return nil
}

// EnsureNotIn fails if key is forbidden. A nil forbidden set forbids nothing.
func EnsureNotIn(caller, key string, forbidden []string) error {
	if slices.Contains(forbidden, key) {
		return fmt.Errorf("%s got a %w %q", caller, ErrForbiddenKey, key)
	}
	return nil
}

// Check applies EnsureIn then EnsureNotIn.
func Check(caller, key string, allowed, forbidden []string) error {
	if err := EnsureIn(caller, key, allowed); err != nil {
		return err
	}
	return EnsureNotIn(caller, key, forbidden)
}

// CheckAll checks every key and joins the failures.
func CheckAll(caller string, keys, allowed, forbidden []string) error {
	var errs []error
	for _, key := range keys {
		if err := Check(caller, key, allowed, forbidden); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
