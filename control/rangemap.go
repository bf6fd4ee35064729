package control

// Map rescales x from [inMin, inMax] to [outMin, outMax].
//
// The multiply-divide uses integer division, so the result truncates toward
// zero. inMax must differ from inMin.
func Map(x, inMin, inMax, outMin, outMax int) int {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
