package statusclass

// ClassOfText classifies a status code carried as fixed-width decimal text,
// e.g. the code field of an HTTP/1.x status line. Only exactly three ASCII
// digits are accepted; the class is decided by the leading digit.
func ClassOfText(code string) Class {
	if len(code) != 3 {
		return Unknown
	}
	return classOfDigits(code[0], code[1], code[2])
}

// ClassOfBytes is ClassOfText for a raw wire buffer. A nil slice is treated
// as absent input.
func ClassOfBytes(code []byte) Class {
	if len(code) != 3 {
		return Unknown
	}
	return classOfDigits(code[0], code[1], code[2])
}

func classOfDigits(c0, c1, c2 byte) Class {
	if !isDigit(c0) || !isDigit(c1) || !isDigit(c2) {
		return Unknown
	}
	return ClassOf(int(c0-'0') * 100)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
