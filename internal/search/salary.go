package search

import (
	"math"
	"regexp"
	"strconv"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ParseSalary extracts every run of digits from a free-form salary string.
// Runs too long for int64 saturate at math.MaxInt64.
func ParseSalary(s string) []int64 {
	runs := digitsRe.FindAllString(s, -1)
	if len(runs) == 0 {
		return nil
	}
	out := make([]int64, 0, len(runs))
	for _, r := range runs {
		n, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			n = math.MaxInt64
		}
		out = append(out, n)
	}
	return out
}

// salaryRange returns the smallest and largest parsed numbers.
func salaryRange(s string) (lo, hi int64, ok bool) {
	nums := ParseSalary(s)
	if len(nums) == 0 {
		return 0, 0, false
	}
	lo, hi = nums[0], nums[0]
	for _, n := range nums[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return lo, hi, true
}
