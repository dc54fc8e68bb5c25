package util

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type statusError int

func (e statusError) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusError) ExitStatus() int { return int(e) }

func TestGetExitStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		status   int
		explicit bool
	}{
		{"nil is success", nil, 0, true},
		{"plain error is fatal", errors.New("boom"), 1, false},
		{"direct status", statusError(1), 1, true},
		{"wrapped by pkg/errors", errors.Wrap(statusError(2), "outer"), 2, true},
		{"wrapped by fmt", fmt.Errorf("outer: %w", statusError(3)), 3, true},
		{"mixed chain", errors.Wrap(fmt.Errorf("mid: %w", statusError(4)), "outer"), 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st, ok := GetExitStatus(tt.err)
			require.Equal(t, tt.status, st)
			require.Equal(t, tt.explicit, ok)
		})
	}
}

func TestIsExitStatusError(t *testing.T) {
	t.Parallel()
	require.False(t, IsExitStatusError(nil))
	require.False(t, IsExitStatusError(errors.New("boom")))
	require.True(t, IsExitStatusError(errors.Wrap(statusError(1), "aborted")))
}

func TestLocaleSupported(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"nothing set", map[string]string{}, false},
		{"LANG utf-8", map[string]string{"LANG": "en_US.UTF-8"}, true},
		{"LANG utf8 lowercase", map[string]string{"LANG": "C.utf8"}, true},
		{"LC_ALL wins over LANG", map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8"}, false},
		{"LC_CTYPE wins over LANG", map[string]string{"LC_CTYPE": "ja_JP.UTF-8", "LANG": "C"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := localeSupported(func(k string) string { return tt.env[k] })
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIsTty(t *testing.T) {
	t.Parallel()
	require.False(t, IsTty(&bytes.Buffer{}), "values without a descriptor are not ttys")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	require.False(t, IsTty(r), "a pipe is not a tty")
}

func TestShell(t *testing.T) {
	t.Parallel()
	out, err := Shell(context.Background(), "printf '%s\\n' hello").Output()
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(out))
}

func TestHomedir(t *testing.T) {
	t.Setenv("HOME", "/tmp/dmenu-home")
	home, err := Homedir()
	require.NoError(t, err)
	require.Equal(t, "/tmp/dmenu-home", home)
}

func TestFoldASCII(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{"ABC", "abc"},
		{"MiXeD 123", "mixed 123"},
		{"ÄBC", "Äbc"},
		{"日本Go", "日本go"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FoldASCII(tt.input))
		})
	}
	require.Equal(t, byte('z'), FoldByte('Z'))
	require.Equal(t, byte('['), FoldByte('['))
}
