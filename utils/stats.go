package utils

import "gonum.org/v1/gonum/stat"

// AlphaMeanStdDev returns the weighted mean and sample standard deviation of
// alpha values, where counts[a] is the number of pixels with alpha a.
// Index 0 is ignored. An empty histogram yields zeros.
func AlphaMeanStdDev(counts []int) (mean, std float64) {
	xs := make([]float64, 0, len(counts))
	ws := make([]float64, 0, len(counts))
	total := 0.0
	for a := 1; a < len(counts); a++ {
		if counts[a] <= 0 {
			continue
		}
		xs = append(xs, float64(a))
		ws = append(ws, float64(counts[a]))
		total += float64(counts[a])
	}
	switch {
	case total == 0:
		return 0, 0
	case total == 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, ws)
}
