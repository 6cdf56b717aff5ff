package winreg

// Access selects the rights a key is opened with.
type Access int

const (
	AccessRead Access = iota
	AccessReadWrite
)

func (a Access) String() string {
	if a == AccessReadWrite {
		return "read-write"
	}
	return "read"
}

// Backend is the platform registry. Implementations must translate native
// status codes so that errors.Is(err, ErrNotFound) and
// errors.Is(err, ErrAccessDenied) hold for the matching conditions.
type Backend interface {
	OpenKey(hive Hive, path string, access Access) (Key, error)
	CreateKey(hive Hive, path string, access Access) (Key, error)
}

// Key is an open registry key handle.
type Key interface {
	GetStringValue(name string) (string, error)
	SetStringValue(name, value string) error
	Close() error
}
