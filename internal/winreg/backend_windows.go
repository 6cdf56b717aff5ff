//go:build windows

package winreg

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

type systemBackend struct{}

// System returns the backend for the local Windows registry.
func System() Backend {
	return systemBackend{}
}

func (systemBackend) OpenKey(hive Hive, path string, access Access) (Key, error) {
	k, err := registry.OpenKey(registry.Key(hive), path, nativeAccess(access))
	if err != nil {
		return nil, translate(err)
	}
	return systemKey{k}, nil
}

func (systemBackend) CreateKey(hive Hive, path string, access Access) (Key, error) {
	k, _, err := registry.CreateKey(registry.Key(hive), path, nativeAccess(access))
	if err != nil {
		return nil, translate(err)
	}
	return systemKey{k}, nil
}

type systemKey struct {
	key registry.Key
}

func (k systemKey) GetStringValue(name string) (string, error) {
	val, _, err := k.key.GetStringValue(name)
	if err != nil {
		return "", translate(err)
	}
	return val, nil
}

func (k systemKey) SetStringValue(name, value string) error {
	return translate(k.key.SetStringValue(name, value))
}

func (k systemKey) Close() error {
	return translate(k.key.Close())
}

func nativeAccess(a Access) uint32 {
	if a == AccessReadWrite {
		return registry.READ | registry.WRITE
	}
	return registry.READ
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrNotExist), errors.Is(err, windows.ERROR_PATH_NOT_FOUND):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	return err
}
