package features

import "math"

// Default indicator parameters. Values are part of the scoring contract and
// only overridden in tests.
const (
	RSIPeriod       = 14
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
	BollingerPeriod = 20
	BollingerK      = 2.0
)

// SMA returns the simple moving average of the last `period` values.
// ok is false when the series is shorter than the period.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

// EMA returns the full exponential moving average series, seeded with the
// first value, smoothing factor 2/(period+1).
func EMA(values []float64, period int) ([]float64, bool) {
	if period <= 0 || len(values) == 0 {
		return nil, false
	}
	k := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1.0-k)
	}
	return out, true
}

// RSI computes the relative strength index over simple rolling means of gains
// and losses. Needs at least period+1 values. When the average loss is zero
// the index saturates at 100; a completely flat window yields 50.
func RSI(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period+1 {
		return 0, false
	}
	gains := 0.0
	losses := 0.0
	start := len(values) - period
	for i := start; i < len(values); i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			gains += d
		} else {
			losses -= d
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, true
		}
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), true
}

// MACD returns the MACD line (fast EMA minus slow EMA), its signal line
// (EMA of the MACD line) and the histogram (line minus signal), all at the
// latest point. Needs at least slow+signal values.
func MACD(values []float64, fast, slow, signal int) (line, sig, hist float64, ok bool) {
	if fast <= 0 || slow <= fast || signal <= 0 || len(values) < slow+signal {
		return 0, 0, 0, false
	}
	fastEMA, _ := EMA(values, fast)
	slowEMA, _ := EMA(values, slow)
	macd := make([]float64, len(values))
	for i := range values {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	sigSeries, _ := EMA(macd, signal)
	line = macd[len(macd)-1]
	sig = sigSeries[len(sigSeries)-1]
	return line, sig, line - sig, true
}

// Bollinger computes the Bollinger bands over the last `period` values:
// middle is the SMA, upper/lower are middle +/- k sample standard deviations,
// and bandwidth is the band spread as a percentage of the middle.
func Bollinger(values []float64, period int, k float64) (upper, middle, lower, bandwidthPct float64, ok bool) {
	if period < 2 || len(values) < period {
		return 0, 0, 0, 0, false
	}
	window := values[len(values)-period:]
	mean, _ := SMA(values, period)
	sum2 := 0.0
	for _, v := range window {
		d := v - mean
		sum2 += d * d
	}
	std := math.Sqrt(sum2 / float64(period-1))
	upper = mean + k*std
	lower = mean - k*std
	if mean != 0 {
		bandwidthPct = (upper - lower) / mean * 100.0
	}
	return upper, mean, lower, bandwidthPct, true
}

// ChangePct returns the percentage change between the value `lookback` points
// ago and the latest value.
func ChangePct(values []float64, lookback int) (float64, bool) {
	if lookback <= 0 || len(values) < lookback+1 {
		return 0, false
	}
	prev := values[len(values)-1-lookback]
	if prev == 0 {
		return 0, false
	}
	return (values[len(values)-1] - prev) / prev * 100.0, true
}
