package circularity

import (
	"math"
	"math/rand"
)

type kmeansParams struct {
	K         int
	Seed      int64
	NInit     int
	MaxIter   int
	Tolerance float64
}

type kmeansResult struct {
	Centroids  [][]float64
	Labels     []int
	Inertia    float64
	Iterations int
	// RunnerUp holds the labels of the second best restart, nil when NInit is 1
	RunnerUp []int
}

// kmeans partitions points with k-means++ seeding and Lloyd iterations,
// keeping the restart with the lowest inertia. A single seeded source drives
// every restart so the outcome is reproducible.
func kmeans(points [][]float64, p kmeansParams) kmeansResult {
	rng := rand.New(rand.NewSource(p.Seed))
	tol := p.Tolerance * meanVariance(points)

	var best, second *kmeansResult
	for run := 0; run < p.NInit; run++ {
		centers := seedPlusPlus(points, p.K, rng)
		res := lloyd(points, centers, p.MaxIter, tol)
		switch {
		case best == nil || res.Inertia < best.Inertia:
			second, best = best, &res
		case second == nil || res.Inertia < second.Inertia:
			second = &res
		}
	}
	out := *best
	if second != nil {
		out.RunnerUp = second.Labels
	}
	return out
}

func meanVariance(points [][]float64) float64 {
	if len(points) == 0 || len(points[0]) == 0 {
		return 0
	}
	d := len(points[0])
	n := float64(len(points))
	var total float64
	for j := 0; j < d; j++ {
		var sum, ss float64
		for _, x := range points {
			sum += x[j]
		}
		mean := sum / n
		for _, x := range points {
			diff := x[j] - mean
			ss += diff * diff
		}
		total += ss / n
	}
	return total / float64(d)
}

func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centers := make([][]float64, 0, k)
	centers = append(centers, cloneVec(points[rng.Intn(n)]))

	dist := make([]float64, n)
	for i, x := range points {
		dist[i] = sqDist(x, centers[0])
	}
	for len(centers) < k {
		var total float64
		for _, d := range dist {
			total += d
		}
		idx := rng.Intn(n)
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range dist {
				target -= d
				if target <= 0 && d > 0 {
					idx = i
					break
				}
			}
		}
		c := cloneVec(points[idx])
		centers = append(centers, c)
		for i, x := range points {
			if d := sqDist(x, c); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centers
}

func lloyd(points [][]float64, centers [][]float64, maxIter int, tol float64) kmeansResult {
	k := len(centers)
	d := len(points[0])
	labels := make([]int, len(points))

	iter := 0
	for iter < maxIter {
		iter++
		for i, x := range points {
			labels[i], _ = nearest(x, centers)
		}
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, d)
		}
		for i, x := range points {
			c := labels[i]
			counts[c]++
			for j, v := range x {
				sums[c][j] += v
			}
		}
		var shift float64
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			for j := range sums[c] {
				sums[c][j] /= float64(counts[c])
			}
			shift += sqDist(sums[c], centers[c])
			centers[c] = sums[c]
		}
		if shift <= tol {
			break
		}
	}

	var inertia float64
	for i, x := range points {
		var dd float64
		labels[i], dd = nearest(x, centers)
		inertia += dd
	}
	return kmeansResult{Centroids: centers, Labels: labels, Inertia: inertia, Iterations: iter}
}

// nearest returns the closest center; ties go to the lower index
func nearest(x []float64, centers [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(x, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
