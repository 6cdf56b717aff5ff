// Package regtest provides an in-memory winreg.Backend that counts key
// handles, for tests.
package regtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pink-tools/pink-lockscreen/internal/winreg"
)

type keyID struct {
	hive winreg.Hive
	path string
}

func id(hive winreg.Hive, path string) keyID {
	return keyID{hive: hive, path: strings.ToLower(path)}
}

// Backend is a fake registry. The zero value is not usable; call New.
type Backend struct {
	mu     sync.Mutex
	keys   map[keyID]map[string]string
	denied map[keyID]bool

	// SetErr, when non-nil, is returned by every SetStringValue.
	SetErr error
	// GetErr, when non-nil, is returned by every GetStringValue.
	GetErr error

	calls  int
	opened int
	closed int
}

func New() *Backend {
	return &Backend{
		keys:   make(map[keyID]map[string]string),
		denied: make(map[keyID]bool),
	}
}

// Put stores a value directly, creating the key.
func (b *Backend) Put(hive winreg.Hive, path, name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := id(hive, path)
	if b.keys[k] == nil {
		b.keys[k] = make(map[string]string)
	}
	b.keys[k][name] = value
}

// AddKey creates an empty key.
func (b *Backend) AddKey(hive winreg.Hive, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := id(hive, path)
	if b.keys[k] == nil {
		b.keys[k] = make(map[string]string)
	}
}

// Get returns a stored value without going through a handle.
func (b *Backend) Get(hive winreg.Hive, path, name string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.keys[id(hive, path)][name]
	return v, ok
}

// Deny makes read-write opens and creates of the key fail with access denied.
func (b *Backend) Deny(hive winreg.Hive, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.denied[id(hive, path)] = true
}

// Calls is the number of OpenKey and CreateKey calls made.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// OpenHandles is the number of handles opened but not yet closed.
func (b *Backend) OpenHandles() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened - b.closed
}

// Opened is the total number of handles handed out.
func (b *Backend) Opened() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opened
}

func (b *Backend) OpenKey(hive winreg.Hive, path string, access winreg.Access) (winreg.Key, error) {
	return b.open(hive, path, access, false)
}

func (b *Backend) CreateKey(hive winreg.Hive, path string, access winreg.Access) (winreg.Key, error) {
	return b.open(hive, path, access, true)
}

func (b *Backend) open(hive winreg.Hive, path string, access winreg.Access, create bool) (winreg.Key, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	k := id(hive, path)
	if access == winreg.AccessReadWrite && b.denied[k] {
		return nil, fmt.Errorf("%w: %s\\%s", winreg.ErrAccessDenied, hive, path)
	}
	if _, ok := b.keys[k]; !ok {
		if !create {
			return nil, fmt.Errorf("%w: %s\\%s", winreg.ErrNotFound, hive, path)
		}
		b.keys[k] = make(map[string]string)
	}

	b.opened++
	return &handle{backend: b, id: k, access: access}, nil
}

type handle struct {
	backend *Backend
	id      keyID
	access  winreg.Access
	closed  bool
}

func (h *handle) GetStringValue(name string) (string, error) {
	b := h.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if h.closed {
		return "", fmt.Errorf("regtest: use of closed handle")
	}
	if b.GetErr != nil {
		return "", b.GetErr
	}
	v, ok := b.keys[h.id][name]
	if !ok {
		return "", fmt.Errorf("%w: value %s", winreg.ErrNotFound, name)
	}
	return v, nil
}

func (h *handle) SetStringValue(name, value string) error {
	b := h.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if h.closed {
		return fmt.Errorf("regtest: use of closed handle")
	}
	if h.access != winreg.AccessReadWrite {
		return fmt.Errorf("%w: handle opened for %s", winreg.ErrAccessDenied, h.access)
	}
	if b.SetErr != nil {
		return b.SetErr
	}
	b.keys[h.id][name] = value
	return nil
}

func (h *handle) Close() error {
	b := h.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if h.closed {
		return fmt.Errorf("regtest: handle closed twice")
	}
	h.closed = true
	b.closed++
	return nil
}
