//go:build !windows

package winreg

type systemBackend struct{}

// System returns a backend that fails every call with ErrUnsupported.
func System() Backend {
	return systemBackend{}
}

func (systemBackend) OpenKey(Hive, string, Access) (Key, error) {
	return nil, ErrUnsupported
}

func (systemBackend) CreateKey(Hive, string, Access) (Key, error) {
	return nil, ErrUnsupported
}
