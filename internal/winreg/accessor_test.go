package winreg_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pink-tools/pink-lockscreen/internal/winreg"
	"github.com/pink-tools/pink-lockscreen/internal/winreg/regtest"
)

const (
	testKey   = `SOFTWARE\Policies\Microsoft\Windows\Personalization`
	testValue = "LockScreenImage"
)

func TestInvalidHive(t *testing.T) {
	for _, h := range []winreg.Hive{0, 0x80000000, 0x80000003, 42} {
		b := regtest.New()
		a := winreg.New(b, winreg.Options{CreateMissing: true})

		_, _, err := a.ReadString(h, testKey, testValue)
		require.ErrorIs(t, err, winreg.ErrInvalidArgument)

		err = a.WriteString(h, testKey, testValue, `C:\tmp.jpg`)
		require.ErrorIs(t, err, winreg.ErrInvalidArgument)

		assert.Zero(t, b.Calls(), "hive %s reached the backend", h)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		hive  winreg.Hive
		value string
	}{
		{"local machine", winreg.LocalMachine, `C:\tmp.jpg`},
		{"current user", winreg.CurrentUser, `D:\pic.jpg`},
		{"spaces inside", winreg.LocalMachine, `C:\My Pictures\lock screen.png`},
		{"unicode", winreg.LocalMachine, `C:\Bilder\schön.jpg`},
		{"empty", winreg.LocalMachine, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := regtest.New()
			a := winreg.New(b, winreg.Options{CreateMissing: true})

			require.NoError(t, a.WriteString(tt.hive, testKey, testValue, tt.value))

			got, found, err := a.ReadString(tt.hive, testKey, testValue)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.value, got)
			assert.Zero(t, b.OpenHandles())
		})
	}
}

func TestReadTrimsPadding(t *testing.T) {
	b := regtest.New()
	b.Put(winreg.LocalMachine, testKey, testValue, "  C:\\tmp.jpg \x00\x00")
	a := winreg.New(b, winreg.Options{})

	got, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `C:\tmp.jpg`, got)
}

func TestReadAbsent(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		b := regtest.New()
		a := winreg.New(b, winreg.Options{})

		got, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, got)
		assert.Zero(t, b.Opened())
	})

	t.Run("missing value", func(t *testing.T) {
		b := regtest.New()
		b.AddKey(winreg.LocalMachine, testKey)
		a := winreg.New(b, winreg.Options{})

		_, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, 1, b.Opened())
		assert.Zero(t, b.OpenHandles())
	})

	t.Run("other hive", func(t *testing.T) {
		b := regtest.New()
		b.Put(winreg.CurrentUser, testKey, testValue, `C:\tmp.jpg`)
		a := winreg.New(b, winreg.Options{})

		_, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestReadQueryFailure(t *testing.T) {
	b := regtest.New()
	b.Put(winreg.LocalMachine, testKey, testValue, `C:\tmp.jpg`)
	b.GetErr = errors.New("unexpected key value type")
	a := winreg.New(b, winreg.Options{})

	_, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
	require.Error(t, err)
	assert.False(t, found)
	assert.ErrorIs(t, err, b.GetErr)
	assert.Zero(t, b.OpenHandles())
}

func TestWriteAccessDenied(t *testing.T) {
	b := regtest.New()
	b.Put(winreg.LocalMachine, testKey, testValue, `C:\tmp.jpg`)
	b.Deny(winreg.LocalMachine, testKey)
	a := winreg.New(b, winreg.Options{CreateMissing: true})

	err := a.WriteString(winreg.LocalMachine, testKey, testValue, `D:\pic.jpg`)
	require.ErrorIs(t, err, winreg.ErrAccessDenied)

	var denied *winreg.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, testKey, denied.Key)
	assert.Contains(t, err.Error(), "Access denied.")
	assert.Contains(t, err.Error(), "Administrator privileges")

	got, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `C:\tmp.jpg`, got)
	assert.Zero(t, b.OpenHandles())
}

func TestWriteMissingKey(t *testing.T) {
	t.Run("without create", func(t *testing.T) {
		b := regtest.New()
		a := winreg.New(b, winreg.Options{})

		err := a.WriteString(winreg.LocalMachine, testKey, testValue, `C:\tmp.jpg`)
		require.ErrorIs(t, err, winreg.ErrNotFound)
		assert.NotErrorIs(t, err, winreg.ErrAccessDenied)

		_, ok := b.Get(winreg.LocalMachine, testKey, testValue)
		assert.False(t, ok)
	})

	t.Run("with create", func(t *testing.T) {
		b := regtest.New()
		a := winreg.New(b, winreg.Options{CreateMissing: true})

		require.NoError(t, a.WriteString(winreg.LocalMachine, testKey, testValue, `C:\tmp.jpg`))

		got, ok := b.Get(winreg.LocalMachine, testKey, testValue)
		assert.True(t, ok)
		assert.Equal(t, `C:\tmp.jpg`, got)
	})
}

func TestWriteFailureClosesHandle(t *testing.T) {
	b := regtest.New()
	b.AddKey(winreg.LocalMachine, testKey)
	b.SetErr = errors.New("the configuration registry database is corrupt")
	a := winreg.New(b, winreg.Options{})

	err := a.WriteString(winreg.LocalMachine, testKey, testValue, `C:\tmp.jpg`)
	require.ErrorIs(t, err, b.SetErr)
	assert.NotErrorIs(t, err, winreg.ErrAccessDenied)
	assert.Equal(t, 1, b.Opened())
	assert.Zero(t, b.OpenHandles())
}

func TestHandlesReleasedOnce(t *testing.T) {
	b := regtest.New()
	a := winreg.New(b, winreg.Options{CreateMissing: true})

	for i := 0; i < 5; i++ {
		require.NoError(t, a.WriteString(winreg.LocalMachine, testKey, testValue, `C:\tmp.jpg`))
		_, _, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
		require.NoError(t, err)
		_, _, err = a.ReadString(winreg.LocalMachine, testKey, "Missing")
		require.NoError(t, err)
	}

	assert.Equal(t, 15, b.Opened())
	assert.Zero(t, b.OpenHandles())
}

func TestLegacyEncoding(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`C:\tmp.jpg`, `C:\tmp.jpg`},
		{`C:\Bilder\schön.jpg`, `C:\Bilder\schön.jpg`},
		{`C:\图片\a.jpg`, "C:\\\x1a\x1a\\a.jpg"},
	}

	for _, tt := range tests {
		b := regtest.New()
		a := winreg.New(b, winreg.Options{CreateMissing: true, Encoding: winreg.EncodingLegacy})

		require.NoError(t, a.WriteString(winreg.LocalMachine, testKey, testValue, tt.in))

		got, ok := b.Get(winreg.LocalMachine, testKey, testValue)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestLegacyEncodingReadBack(t *testing.T) {
	b := regtest.New()
	a := winreg.New(b, winreg.Options{CreateMissing: true, Encoding: winreg.EncodingLegacy})

	require.NoError(t, a.WriteString(winreg.LocalMachine, testKey, testValue, `C:\图`))

	got, found, err := a.ReadString(winreg.LocalMachine, testKey, testValue)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "C:\\\x1a", got)
}
