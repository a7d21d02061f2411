package raster

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/logo-colors/internal/colors"
)

const (
	// maxDimension is the longest side an image is reduced to before
	// clustering; detail beyond this adds noise, not palette information.
	maxDimension = 800

	// sampleLimit caps how many pixels feed the clustering step.
	sampleLimit = 200000

	// mergeThreshold is the CIE76 distance below which two cluster
	// centroids are considered the same color.
	mergeThreshold = 8.0

	// whiteCutoff: a centroid whose R, G and B all exceed this is reported
	// as the symbolic white token rather than a hex code.
	whiteCutoff = 245

	kMin          = 3
	kMax          = 8
	kmeansMaxIter = 50
	kmeansEps     = 0.5
	kmeansRuns    = 5
)

// Options controls the non-deterministic parts of the pipeline.
type Options struct {
	// Seed fixes the RNG used for pixel subsampling and cluster seeding.
	// Zero selects a time-derived seed, trading reproducibility away.
	Seed int64
}

// CountColors decodes a raster file and returns the set of canonical colors
// it meaningfully contains. Centroids that are near-white on every channel
// collapse to the single symbolic white token; everything else (including
// near-black) is reported as upper-case "#RRGGBB" hex.
//
// A degenerate decoded layout (zero-area image) is a soft failure: the
// returned set is empty and err is nil. Decode failures are returned as
// errors.
func CountColors(path string, opts Options) (map[string]struct{}, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}

	flat := FlattenOnWhite(img)
	fitted := imaging.Fit(flat, maxDimension, maxDimension, imaging.Lanczos)

	result := make(map[string]struct{})
	if fitted.Bounds().Dx() == 0 || fitted.Bounds().Dy() == 0 {
		return result, nil
	}

	p := fromNRGBA(fitted)
	p = bilateral(p, 3, 75, 75)
	grayWorld(p)
	labs := toLab(p)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sample := subsample(labs, sampleLimit, rng)

	k := estimateK(sample)
	if k > len(sample) {
		k = len(sample)
	}

	centers := kmeans(sample, k, rng)
	kept := mergeClose(centers, mergeThreshold)

	for _, c := range kept {
		r, g, b := labToRGB(c)
		if r > whiteCutoff && g > whiteCutoff && b > whiteCutoff {
			result[colors.White] = struct{}{}
			continue
		}
		result[fmt.Sprintf("#%02X%02X%02X", r, g, b)] = struct{}{}
	}

	return result, nil
}

// subsample draws up to limit points uniformly without replacement using a
// partial Fisher-Yates shuffle. Smaller inputs are returned as-is.
func subsample(points []labPoint, limit int, rng *rand.Rand) []labPoint {
	if len(points) <= limit {
		return points
	}

	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}

	out := make([]labPoint, limit)
	for i := 0; i < limit; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = points[idx[i]]
	}
	return out
}

// estimateK picks the cluster count from the Shannon entropy of a 32-bin
// lightness histogram. Flat images (entropy near 0) get the minimum of 3;
// busy images saturate at 8. Entropy of a 32-bin histogram tops out at
// log2(32) = 5, which maps linearly onto [3,8].
func estimateK(points []labPoint) int {
	const bins = 32

	var hist [bins]float64
	for _, p := range points {
		i := int(p[0] / 256 * bins)
		if i < 0 {
			i = 0
		} else if i >= bins {
			i = bins - 1
		}
		hist[i]++
	}

	total := float64(len(points))
	entropy := 0.0
	for _, count := range hist {
		prob := count/total + 1e-12
		entropy -= prob * math.Log2(prob)
	}

	if entropy < 0 {
		entropy = 0
	} else if entropy > 5 {
		entropy = 5
	}

	k := kMin + int(math.Round(entropy/5*float64(kMax-kMin)))
	if k < kMin {
		k = kMin
	} else if k > kMax {
		k = kMax
	}
	return k
}

// kmeans runs Lloyd's algorithm with k-means++ seeding, keeping the best of
// several independent runs by total within-cluster squared distance.
func kmeans(samples []labPoint, k int, rng *rand.Rand) []labPoint {
	if k <= 0 || len(samples) == 0 {
		return nil
	}

	var best []labPoint
	bestCompactness := math.Inf(1)

	for run := 0; run < kmeansRuns; run++ {
		centers := seedPlusPlus(samples, k, rng)
		centers = lloyd(samples, centers)

		compactness := 0.0
		for _, s := range samples {
			compactness += nearestDist2(s, centers)
		}
		if compactness < bestCompactness {
			bestCompactness = compactness
			best = centers
		}
	}

	return best
}

// seedPlusPlus picks initial centers with probability proportional to the
// squared distance from the nearest already-chosen center. When every
// remaining point coincides with a chosen center the pick degrades to
// uniform, which keeps single-color images from stalling.
func seedPlusPlus(samples []labPoint, k int, rng *rand.Rand) []labPoint {
	centers := make([]labPoint, 0, k)
	centers = append(centers, samples[rng.Intn(len(samples))])

	d2 := make([]float64, len(samples))
	for len(centers) < k {
		total := 0.0
		for i, s := range samples {
			d2[i] = nearestDist2(s, centers)
			total += d2[i]
		}

		if total == 0 {
			centers = append(centers, samples[rng.Intn(len(samples))])
			continue
		}

		target := rng.Float64() * total
		acc := 0.0
		chosen := len(samples) - 1
		for i, d := range d2 {
			acc += d
			if acc >= target {
				chosen = i
				break
			}
		}
		centers = append(centers, samples[chosen])
	}

	return centers
}

// lloyd iterates assign/update until centroids move less than kmeansEps or
// the iteration cap is hit. Clusters that lose all members keep their
// previous centroid; duplicate centroids are collapsed later by the merge
// pass.
func lloyd(samples []labPoint, centers []labPoint) []labPoint {
	k := len(centers)
	sums := make([]labPoint, k)
	counts := make([]int, k)

	for iter := 0; iter < kmeansMaxIter; iter++ {
		for i := range sums {
			sums[i] = labPoint{}
			counts[i] = 0
		}

		for _, s := range samples {
			c := nearestIndex(s, centers)
			sums[c][0] += s[0]
			sums[c][1] += s[1]
			sums[c][2] += s[2]
			counts[c]++
		}

		maxMove := 0.0
		for i := range centers {
			if counts[i] == 0 {
				continue
			}
			n := float64(counts[i])
			next := labPoint{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
			move := math.Sqrt(dist2(centers[i], next))
			if move > maxMove {
				maxMove = move
			}
			centers[i] = next
		}

		if maxMove < kmeansEps {
			break
		}
	}

	return centers
}

// mergeClose deduplicates centroids: centers are put in a stable order
// (sorted by lightness) and then kept greedily, each survivor required to
// sit at least threshold away from every previously kept one. Single pass,
// order-dependent, and deliberately so: the stable sort makes the outcome
// independent of clustering iteration order.
func mergeClose(centers []labPoint, threshold float64) []labPoint {
	sorted := make([]labPoint, len(centers))
	copy(sorted, centers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][0] < sorted[j][0]
	})

	t2 := threshold * threshold
	kept := make([]labPoint, 0, len(sorted))
	for _, c := range sorted {
		tooClose := false
		for _, k := range kept {
			if dist2(c, k) < t2 {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}
	return kept
}

func nearestIndex(p labPoint, centers []labPoint) int {
	best := 0
	bestD := math.Inf(1)
	for i, c := range centers {
		if d := dist2(p, c); d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

func nearestDist2(p labPoint, centers []labPoint) float64 {
	bestD := math.Inf(1)
	for _, c := range centers {
		if d := dist2(p, c); d < bestD {
			bestD = d
		}
	}
	return bestD
}
