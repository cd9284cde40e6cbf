package aggregate

import "github.com/shopspring/decimal"

var (
	half = decimal.NewFromFloat(0.5)
	one  = decimal.NewFromInt(1)
)

// RoundTenth rounds v half up (toward positive infinity on ties) to one
// decimal place, on its shortest decimal representation. 4.449999 becomes
// 4.4, 4.45 becomes 4.5 and -4.45 becomes -4.4.
func RoundTenth(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Shift(1).Add(half).Floor().Shift(-1).Float64()
	return rounded
}

// Mean returns sum/n rounded half up to one decimal place, or nil when n is
// zero. The rounding is computed exactly as floor((20*sum + n) / (2n)) tenths.
func Mean(sum, n int64) *float64 {
	if n == 0 {
		return nil
	}
	s, d := decimal.NewFromInt(sum), decimal.NewFromInt(n)
	if d.IsNegative() {
		s, d = s.Neg(), d.Neg()
	}
	num := s.Mul(decimal.NewFromInt(20)).Add(d)
	tenths, rem := num.QuoRem(d.Mul(decimal.NewFromInt(2)), 0)
	if rem.IsNegative() {
		tenths = tenths.Sub(one)
	}
	mean, _ := tenths.Shift(-1).Float64()
	return &mean
}
