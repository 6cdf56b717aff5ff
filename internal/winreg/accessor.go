// Package winreg reads and writes single string values in the Windows
// registry.
package winreg

import (
	"errors"
	"fmt"
)

type Options struct {
	// CreateMissing makes WriteString create the key when it does not exist.
	CreateMissing bool
	Encoding      Encoding
}

type Accessor struct {
	backend Backend
	opts    Options
}

func New(backend Backend, opts Options) *Accessor {
	return &Accessor{backend: backend, opts: opts}
}

// ReadString returns the string stored under hive\path\name. A key that
// cannot be opened reads as absent (found == false, nil error) unless the
// open was denied. Failures querying an opened key are returned as errors.
func (a *Accessor) ReadString(hive Hive, path, name string) (value string, found bool, err error) {
	if !hive.valid() {
		return "", false, fmt.Errorf("%w: hive=%s", ErrInvalidArgument, hive)
	}

	k, err := a.backend.OpenKey(hive, path, AccessRead)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		if errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrUnsupported) {
			return "", false, fmt.Errorf("failed to open %s\\%s: %w", hive, path, err)
		}
		return "", false, nil
	}
	defer k.Close()

	val, err := k.GetStringValue(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s\\%s\\%s: %w", hive, path, name, err)
	}

	return trimPadding(val), true, nil
}

// WriteString stores value under hive\path\name. If the key cannot be
// opened for writing it returns an *AccessDeniedError.
func (a *Accessor) WriteString(hive Hive, path, name, value string) error {
	if !hive.valid() {
		return fmt.Errorf("%w: hive=%s", ErrInvalidArgument, hive)
	}

	stored, err := a.opts.Encoding.apply(value)
	if err != nil {
		return err
	}

	open := a.backend.OpenKey
	if a.opts.CreateMissing {
		open = a.backend.CreateKey
	}

	k, err := open(hive, path, AccessReadWrite)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return &AccessDeniedError{Key: path}
		}
		return fmt.Errorf("failed to open %s\\%s: %w", hive, path, err)
	}

	if err := k.SetStringValue(name, stored); err != nil {
		k.Close()
		if errors.Is(err, ErrAccessDenied) {
			return &AccessDeniedError{Key: path}
		}
		return fmt.Errorf("failed to write %s\\%s\\%s: %w", hive, path, name, err)
	}

	if err := k.Close(); err != nil {
		return fmt.Errorf("failed to close %s\\%s: %w", hive, path, err)
	}
	return nil
}
