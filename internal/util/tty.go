package util

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type fder interface {
	Fd() uintptr
}

// IsTty checks if the given value is backed by a terminal file descriptor.
// Anything that does not expose a descriptor (pipes wrapped in readers,
// buffers in tests) is not a tty.
func IsTty(arg any) bool {
	fdsrc, ok := arg.(fder)
	if !ok {
		return false
	}
	fd := fdsrc.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var localeVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// LocaleSupported reports whether the environment selects a UTF-8
// locale. The first non-empty variable in POSIX precedence order wins.
func LocaleSupported() bool {
	return localeSupported(os.Getenv)
}

func localeSupported(getenv func(string) string) bool {
	for _, name := range localeVars {
		v := getenv(name)
		if v == "" {
			continue
		}
		v = strings.ToLower(v)
		return strings.Contains(v, "utf-8") || strings.Contains(v, "utf8")
	}
	return false
}
