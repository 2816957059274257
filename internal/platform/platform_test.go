package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalArch(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"amd64", "amd64"},
		{"x86_64", "amd64"},
		{"X86_64", "amd64"},
		{"x64", "amd64"},
		{"aarch64", "arm64"},
		{"arm64", "arm64"},
		{"i686", "386"},
		{"armv7l", "arm"},
		{"riscv64", "riscv64"}, // unknown passes through lowercased
		{" RISCV64 ", "riscv64"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalArch(tt.raw))
		})
	}
}

func TestCanonicalOS(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"linux", "linux"},
		{"macOS", "darwin"},
		{"OSX", "darwin"},
		{"win", "windows"},
		{"Windows", "windows"},
		{"plan9", "plan9"}, // unknown passes through
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalOS(tt.raw))
		})
	}
}

func TestPatternSets(t *testing.T) {
	spec := Spec{OS: "darwin", Arch: "amd64"}
	assert.Equal(t, []string{"darwin", "macos", "osx", "mac"}, spec.OSPatterns())
	assert.Equal(t, []string{"amd64", "x86_64", "x64"}, spec.ArchPatterns())
}

func TestPatternSetsUnknownDegenerate(t *testing.T) {
	spec := Spec{OS: "plan9", Arch: "riscv64"}
	assert.Equal(t, []string{"plan9"}, spec.OSPatterns())
	assert.Equal(t, []string{"riscv64"}, spec.ArchPatterns())
}

func TestPatternSetsAreCopies(t *testing.T) {
	spec := Spec{OS: "linux", Arch: "amd64"}
	got := spec.ArchPatterns()
	got[0] = "mutated"
	assert.Equal(t, []string{"amd64", "x86_64", "x64"}, spec.ArchPatterns())
}

func TestNameMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"tool_windows_amd64.zip", "win", true},
		{"Tool_WIN64.zip", "win64", true},
		{"tool_darwin_amd64.tar.gz", "win", false}, // "win" inside "darwin"
		{"tool_linux_armv7.tar.gz", "arm", true},
		{"tool_linux_arm64.tar.gz", "arm", false}, // "arm" inside "arm64"
		{"tool_linux_x86.tar.gz", "x86", true},
		{"tool_linux_x86_64.tar.gz", "x86", false}, // "x86" inside "x86_64"
		{"tool_linux_x86_64.tar.gz", "x86_64", true},
		{"tool_linux_amd64.tar.gz", "arm", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, NameMatches(tt.name, tt.pattern))
		})
	}
}

func TestCurrent(t *testing.T) {
	spec := Current()
	assert.NotEmpty(t, spec.OS)
	assert.NotEmpty(t, spec.Arch)
	assert.Contains(t, spec.String(), "/")
}
