package core

// FormatUint converts an unsigned integer to decimal without pulling
// fmt into firmware images. Telemetry and debug output on the target
// go through this.
func FormatUint(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
