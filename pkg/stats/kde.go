package stats

import "math"

// ScottBandwidth returns Scott's rule of thumb bandwidth for a Gaussian
// kernel: std * n^(-1/5). A degenerate sample (fewer than two points or
// zero spread) gets a bandwidth of 1 so that a density can still be drawn.
func ScottBandwidth(x []float64) float64 {
	sd := Std(x)
	if len(x) < 2 || sd == 0 {
		return 1
	}
	return sd * math.Pow(float64(len(x)), -0.2)
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// GaussianKDE evaluates a Gaussian kernel density estimate of samples at
// every point of grid.
func GaussianKDE(samples []float64, bw float64, grid []float64) []float64 {
	density := make([]float64, len(grid))
	if len(samples) == 0 || bw <= 0 {
		return density
	}
	norm := 1 / (float64(len(samples)) * bw * math.Sqrt(2*math.Pi))
	for i, g := range grid {
		sum := 0.0
		for _, s := range samples {
			z := (g - s) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		density[i] = sum * norm
	}
	return density
}
