// Package numeric provides the small integer-arithmetic building blocks the
// rate-conversion planner needs: greatest common divisor and a bounded
// prime-factor decomposition.
package numeric
