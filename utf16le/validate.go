// Package utf16le holds the interchangeable UTF-16LE validation
// routines measured by the benchmark driver.
//
// Every routine shares one contract: given a buffer of 16-bit code
// units, return the number of code units forming a valid UTF-16
// prefix. A fully valid buffer therefore yields its own length; the
// return value of a routine that stops early points at the first
// offending code unit.
package utf16le

// Method is a named candidate routine. New candidates register here;
// the driver never hard-codes routine names.
type Method struct {
	Name     string
	Validate func(p []uint16) int
}

// Methods returns the registered candidates in benchmark order.
func Methods() []Method {
	return []Method{
		{Name: "ref", Validate: Ref},
		{Name: "unrolled", Validate: Unrolled},
		{Name: "decoder", Validate: Decoder},
	}
}

// Lookup returns the method with the given name.
func Lookup(name string) (Method, bool) {
	for _, m := range Methods() {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// surrogate reports whether c is in the surrogate range D800..DFFF.
func surrogate(c uint16) bool {
	return c&0xF800 == 0xD800
}

// Ref is the scalar reference validator: a straight walk over the code
// units pairing high surrogates with the low surrogate that must
// follow.
func Ref(p []uint16) int {
	i := 0
	for i < len(p) {
		c := p[i]
		switch {
		case !surrogate(c):
			i++
		case c < 0xDC00:
			// High surrogate: the next unit must be a low one.
			if i+1 < len(p) && p[i+1]&0xFC00 == 0xDC00 {
				i += 2
			} else {
				return i
			}
		default:
			// Low surrogate with no preceding high.
			return i
		}
	}
	return i
}

// Unrolled validates four code units per step while the input stays in
// the basic multilingual plane, falling back to the scalar walk around
// surrogates. Same contract as Ref.
func Unrolled(p []uint16) int {
	i := 0
	for i+4 <= len(p) {
		if surrogate(p[i]) || surrogate(p[i+1]) || surrogate(p[i+2]) || surrogate(p[i+3]) {
			next, ok := step(p, i)
			if !ok {
				return i
			}
			i = next
			continue
		}
		i += 4
	}
	for i < len(p) {
		next, ok := step(p, i)
		if !ok {
			return i
		}
		i = next
	}
	return i
}

// step advances past one scalar value starting at i, reporting false at
// the first invalid unit.
func step(p []uint16, i int) (int, bool) {
	c := p[i]
	switch {
	case !surrogate(c):
		return i + 1, true
	case c < 0xDC00:
		if i+1 < len(p) && p[i+1]&0xFC00 == 0xDC00 {
			return i + 2, true
		}
		return i, false
	default:
		return i, false
	}
}
