package pumpd

// pow10 covers every digit slot of the 16 column edit line.
var pow10 = [...]uint32{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000}

// EditDigit steps the decimal digit at position (0 is the rightmost digit)
// of v by one, wrapping 9→0 going up and 0→9 going down. Other digits are
// kept. The display cannot be read back, so the digit is recovered from v
// alone. The result is not clamped to any field maximum.
func EditDigit(v uint32, position uint8, increment bool) uint32 {
	if int(position) >= len(pow10) {
		return v
	}

	p := pow10[position]
	digit := (v / p) % 10

	next := digit + 1
	if next > 9 {
		next = 0
	}
	if !increment {
		next = 9
		if digit > 0 {
			next = digit - 1
		}
	}

	return v - digit*p + next*p
}

// Digit returns the decimal digit at position of v.
func Digit(v uint32, position uint8) uint32 {
	if int(position) >= len(pow10) {
		return 0
	}
	return (v / pow10[position]) % 10
}
