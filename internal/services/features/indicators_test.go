package features

import (
	"math"
	"testing"
)

func seq(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func TestSMA(t *testing.T) {
	got, ok := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}
}

func TestSMAInsufficient(t *testing.T) {
	if _, ok := SMA([]float64{1, 2}, 3); ok {
		t.Fatalf("expected not ok")
	}
}

func TestRSIBounds(t *testing.T) {
	prices := seq(60, func(i int) float64 {
		return 100 + 5*math.Sin(float64(i)/3)
	})
	got, ok := RSI(prices, RSIPeriod)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got < 0 || got > 100 {
		t.Fatalf("rsi out of range: %v", got)
	}
}

func TestRSIInsufficient(t *testing.T) {
	if _, ok := RSI(seq(RSIPeriod, func(i int) float64 { return float64(i) }), RSIPeriod); ok {
		t.Fatalf("expected not ok with period points")
	}
}

func TestRSIAllGains(t *testing.T) {
	prices := seq(20, func(i int) float64 { return float64(100 + i) })
	got, ok := RSI(prices, RSIPeriod)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 100 {
		t.Fatalf("expected 100 on monotone rise, got %v", got)
	}
}

func TestRSIFlat(t *testing.T) {
	prices := seq(20, func(int) float64 { return 100 })
	got, ok := RSI(prices, RSIPeriod)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 50 {
		t.Fatalf("expected 50 on flat series, got %v", got)
	}
}

func TestMACDInsufficient(t *testing.T) {
	if _, _, _, ok := MACD(seq(30, func(i int) float64 { return float64(i) }), MACDFast, MACDSlow, MACDSignal); ok {
		t.Fatalf("expected not ok below slow+signal points")
	}
}

func TestMACDRisingTrendPositive(t *testing.T) {
	prices := seq(80, func(i int) float64 { return 100 + float64(i) })
	line, _, _, ok := MACD(prices, MACDFast, MACDSlow, MACDSignal)
	if !ok {
		t.Fatalf("expected ok")
	}
	if line <= 0 {
		t.Fatalf("expected positive macd in uptrend, got %v", line)
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	prices := seq(80, func(i int) float64 { return 100 + 3*math.Sin(float64(i)/5) })
	line, sig, hist, ok := MACD(prices, MACDFast, MACDSlow, MACDSignal)
	if !ok {
		t.Fatalf("expected ok")
	}
	if math.Abs(hist-(line-sig)) > 1e-12 {
		t.Fatalf("histogram mismatch: %v vs %v", hist, line-sig)
	}
}

func TestBollinger(t *testing.T) {
	prices := seq(40, func(i int) float64 { return 100 + math.Sin(float64(i)) })
	up, mid, lo, bw, ok := Bollinger(prices, BollingerPeriod, BollingerK)
	if !ok {
		t.Fatalf("expected ok")
	}
	if !(lo < mid && mid < up) {
		t.Fatalf("bands out of order: %v %v %v", lo, mid, up)
	}
	if bw <= 0 {
		t.Fatalf("expected positive bandwidth, got %v", bw)
	}
}

func TestBollingerFlatSeries(t *testing.T) {
	prices := seq(25, func(int) float64 { return 50 })
	up, mid, lo, bw, ok := Bollinger(prices, BollingerPeriod, BollingerK)
	if !ok {
		t.Fatalf("expected ok")
	}
	if up != 50 || mid != 50 || lo != 50 || bw != 0 {
		t.Fatalf("expected degenerate bands, got %v %v %v %v", up, mid, lo, bw)
	}
}

func TestChangePct(t *testing.T) {
	got, ok := ChangePct([]float64{100, 110}, 1)
	if !ok {
		t.Fatalf("expected ok")
	}
	if math.Abs(got-10) > 1e-12 {
		t.Fatalf("expected 10, got %v", got)
	}
}
