package util

// FoldByte lowers an ASCII upper case letter and leaves every other
// byte, including UTF-8 sequence bytes, untouched.
func FoldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// FoldASCII lowers the ASCII letters of s.
func FoldASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				b[j] = FoldByte(b[j])
			}
			return string(b)
		}
	}
	return s
}
