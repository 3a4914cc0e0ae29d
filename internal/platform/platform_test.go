package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSystem struct {
	goos   string
	goarch string
	env    map[string]string
}

func (s fakeSystem) GOOS() string   { return s.goos }
func (s fakeSystem) GOARCH() string { return s.goarch }
func (s fakeSystem) Getenv(key string) string {
	return s.env[key]
}

func TestDetectSupportedPlatforms(t *testing.T) {
	cases := []struct {
		goos      string
		goarch    string
		installer string
		lockfile  string
	}{
		{"linux", "amd64", "Miniconda3-latest-Linux-x86_64.sh", "conda-linux-64.lock"},
		{"darwin", "amd64", "Miniconda3-latest-MacOSX-x86_64.sh", "conda-osx-64.lock"},
		{"darwin", "arm64", "Miniconda3-latest-MacOSX-arm64.sh", "conda-osx-arm64.lock"},
	}
	for _, tc := range cases {
		sys := fakeSystem{goos: tc.goos, goarch: tc.goarch, env: map[string]string{"SHELL": "/bin/bash"}}
		host, err := Detect(sys)
		require.NoError(t, err, "%s/%s", tc.goos, tc.goarch)
		require.Equal(t, tc.installer, host.InstallerName())
		require.Equal(t, tc.lockfile, host.LockfileName())
		require.Equal(t, "bash", host.Shell)
	}
}

func TestDetectUnsupportedPlatform(t *testing.T) {
	sys := fakeSystem{goos: "windows", goarch: "amd64", env: map[string]string{"SHELL": "/bin/bash"}}
	_, err := Detect(sys)
	require.ErrorContains(t, err, "unsupported platform windows/amd64")
}

func TestDetectShell(t *testing.T) {
	base := fakeSystem{goos: "linux", goarch: "amd64"}

	zsh := base
	zsh.env = map[string]string{"SHELL": "/usr/bin/zsh"}
	host, err := Detect(zsh)
	require.NoError(t, err)
	require.Equal(t, "zsh", host.Shell)

	fish := base
	fish.env = map[string]string{"SHELL": "/usr/bin/fish"}
	_, err = Detect(fish)
	require.ErrorContains(t, err, `unsupported shell "fish"`)

	empty := base
	empty.env = map[string]string{}
	_, err = Detect(empty)
	require.ErrorContains(t, err, "$SHELL is empty")
}

func TestCheckEnvNotActive(t *testing.T) {
	active := fakeSystem{env: map[string]string{ActiveEnvVar: "tinyrna"}}
	err := CheckEnvNotActive(active, "tinyrna")
	require.ErrorContains(t, err, `environment "tinyrna" is currently active`)

	require.NoError(t, CheckEnvNotActive(active, "other"))

	inactive := fakeSystem{env: map[string]string{}}
	require.NoError(t, CheckEnvNotActive(inactive, "tinyrna"))
}
