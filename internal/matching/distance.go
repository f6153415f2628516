package matching

import "math"

// Digits extracts every decimal digit from a free-text location and reads
// the result as a base-10 integer. A location without digits reads as 0 and
// a run too long for int64 saturates at math.MaxInt64.
func Digits(location string) int64 {
	var n int64
	for _, r := range location {
		if r < '0' || r > '9' {
			continue
		}
		d := int64(r - '0')
		if n > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}
		n = n*10 + d
	}
	return n
}

// Distance is the pseudo-distance between two locations: the absolute
// difference of their digit values. It is a placeholder, not geography.
func Distance(a, b string) int64 {
	da, db := Digits(a), Digits(b)
	if da > db {
		return da - db
	}
	return db - da
}
