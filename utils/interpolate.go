// SPDX-License-Identifier: EPL-2.0

package utils

// CatmullRom interpolates between p1 and p2 using the neighbours p0 and p3.
// t is the fractional position in [0, 1]; t=0 yields p1 and t=1 yields p2.
func CatmullRom(p0, p1, p2, p3, t float32) float32 {
	c3 := 0.5 * (-p0 + 3*p1 - 3*p2 + p3)
	c2 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c1 := 0.5 * (p2 - p0)

	// Horner form
	return ((c3*t+c2)*t+c1)*t + p1
}
