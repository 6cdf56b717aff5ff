package winreg

import (
	"fmt"
	"strings"
)

// Hive identifies a root registry namespace. The values match the
// predefined HKEY handles so they can be handed to the native API as is.
type Hive uint32

const (
	CurrentUser  Hive = 0x80000001
	LocalMachine Hive = 0x80000002
)

func (h Hive) String() string {
	switch h {
	case LocalMachine:
		return "HKLM"
	case CurrentUser:
		return "HKCU"
	}
	return fmt.Sprintf("Hive(%#x)", uint32(h))
}

func (h Hive) valid() bool {
	return h == LocalMachine || h == CurrentUser
}

// ParseHive accepts the short (HKLM) and long (HKEY_LOCAL_MACHINE) names.
func ParseHive(name string) (Hive, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "HKLM", "HKEY_LOCAL_MACHINE":
		return LocalMachine, nil
	case "HKCU", "HKEY_CURRENT_USER":
		return CurrentUser, nil
	}
	return 0, fmt.Errorf("%w: unknown hive %q", ErrInvalidArgument, name)
}
