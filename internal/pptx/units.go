package pptx

import "math"

// EMUPerInch is the number of English Metric Units in one inch.
const EMUPerInch = 914400

// EMU is a length in English Metric Units.
type EMU int64

// Inches converts a length in inches to the nearest EMU.
func Inches(in float64) EMU {
	return EMU(math.Round(in * EMUPerInch))
}

// Inches returns e expressed in inches.
func (e EMU) Inches() float64 {
	return float64(e) / EMUPerInch
}
