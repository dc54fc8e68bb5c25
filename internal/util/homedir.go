package util

import "os"

// Homedir returns $HOME, falling back to the user database.
func Homedir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	return "", ErrNoHome
}
