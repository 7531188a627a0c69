package utils

import "strconv"

// NaturalCompare orders two strings the way humans read numbered names:
// each string is split into runs of digits and non-digits, and corresponding
// runs are compared numerically when both parse as integers, otherwise
// lexicographically. When one string's runs are a prefix of the other's,
// the shorter string sorts first. It returns -1, 0 or 1.
func NaturalCompare(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		runA, restA, digitsA := nextRun(a)
		runB, restB, digitsB := nextRun(b)

		if digitsA && digitsB {
			if c := compareNumericRuns(runA, runB); c != 0 {
				return c
			}
		} else if runA != runB {
			if runA < runB {
				return -1
			}
			return 1
		}

		a, b = restA, restB
	}

	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return -1
	default:
		return 1
	}
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// nextRun splits off the leading run of digits or non-digits.
func nextRun(s string) (run, rest string, digits bool) {
	digits = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:], digits
}

// compareNumericRuns compares two digit runs as integers, falling back to
// plain string comparison when either run does not fit in an int64. The
// fallback is per-run only so an oversized number never fails the whole sort.
func compareNumericRuns(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA != nil || errB != nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
