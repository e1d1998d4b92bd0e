package render

import (
	"math"
	"strconv"
)

// Fraction formats a quantity rounded to one decimal as a mixed fraction, e.g.
// 0.5 -> "1/2", 1.25 -> "1 3/10", 3 -> "3". A nil quantity is blank.
func Fraction(q *float64) string {
	if q == nil {
		return ""
	}
	tenths := int64(math.Round(math.Abs(*q) * 10))
	sign := ""
	if *q < 0 && tenths != 0 {
		sign = "-"
	}
	whole, num := tenths/10, tenths%10
	if num == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	den := int64(10)
	g := gcd(num, den)
	num, den = num/g, den/g
	frac := strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
	if whole == 0 {
		return sign + frac
	}
	return sign + strconv.FormatInt(whole, 10) + " " + frac
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
