package numeric

// GCD returns the greatest common divisor of a and b, computed with the
// Euclidean algorithm. The result is always non-negative.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Factorize decomposes x into at most maxCount prime factors by trial
// division, starting with 2 and then odd divisors. Whatever composite
// residue remains once maxCount-1 factors have been extracted is appended
// unfactored as the final element, so the returned slice always multiplies
// back to x. A maxCount of 1 returns x unchanged.
func Factorize(x, maxCount int) []int {
	if maxCount <= 0 {
		return nil
	}
	if maxCount == 1 {
		return []int{x}
	}

	factors := make([]int, 0, maxCount)
	for x >= 4 && x%2 == 0 && len(factors) < maxCount-1 {
		factors = append(factors, 2)
		x /= 2
	}
	for d := 3; d*d <= x && len(factors) < maxCount-1; d += 2 {
		for x%d == 0 && len(factors) < maxCount-1 {
			factors = append(factors, d)
			x /= d
		}
	}
	factors = append(factors, x)
	return factors
}
