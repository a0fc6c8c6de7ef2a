package platform

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		arch    string
		want    Key
		wantErr bool
	}{
		{name: "linux_amd64", goos: "linux", arch: "amd64", want: "linux_amd64"},
		{name: "darwin_arm64", goos: "darwin", arch: "arm64", want: "darwin_arm64"},
		{name: "windows_amd64", goos: "windows", arch: "amd64", want: "windows_amd64"},
		{name: "unsupported_os", goos: "plan9", arch: "amd64", wantErr: true},
		{name: "empty_arch", goos: "linux", arch: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewKey(tt.goos, tt.arch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestTarballName(t *testing.T) {
	key, err := NewKey("linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "terragrunt_linux_amd64", key.TarballName())
}

func TestDetectUsesConfiguredArch(t *testing.T) {
	key, err := Detect(context.Background(), "amd64", zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key.String(), runtime.GOOS+"_"))
	assert.True(t, strings.HasSuffix(key.String(), "_amd64"))
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		kernelArch string
		want       string
	}{
		{"x86_64", "amd64"},
		{"amd64", "amd64"},
		{"aarch64", "arm64"},
		{"arm64", "arm64"},
		{"i686", "386"},
		{"armv7l", "arm"},
		{"riscv64", ""},
	}

	for _, tt := range tests {
		t.Run(tt.kernelArch, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArch(tt.kernelArch))
		})
	}
}
