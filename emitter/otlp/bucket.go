package otlp

import "math"

// expHistogramBuckets holds the OTLP ExponentialHistogramDataPoint
// bucket representation for one sign (positive or negative): Offset is
// the index of the first non-empty bucket, Counts[i] is the count of
// values falling in bucket Offset+i.
type expHistogramBuckets struct {
	Offset int32
	Counts []uint64
}

// buildExponentialHistogram buckets points at the given starting
// scale, per OpenTelemetry's formula (§4.8): for scale s, gamma =
// 2^(2^-s), and the bucket index of value v is ceil(log_gamma(|v|)).
// If the resulting bucket span exceeds maxBuckets, scale is
// decremented (squaring gamma, halving the bucket count for the same
// value range) and indices recomputed, until the span fits or scale
// bottoms out at a sane floor. Returns the buckets actually used (by
// sign) and the final scale.
func buildExponentialHistogram(points []float64, startScale int32, maxBuckets int) (scale int32, zeroCount uint64, positive, negative expHistogramBuckets) {
	scale = startScale
	const minScale = -10 // the practical floor OTel implementations use

	for {
		posIdx := map[int64]uint64{}
		negIdx := map[int64]uint64{}
		var zc uint64
		for _, v := range points {
			if v == 0 {
				zc++
				continue
			}
			idx := bucketIndex(scale, v)
			if v > 0 {
				posIdx[idx]++
			} else {
				negIdx[idx]++
			}
		}
		posSpan := span(posIdx)
		negSpan := span(negIdx)
		if (posSpan <= maxBuckets && negSpan <= maxBuckets) || scale <= minScale {
			zeroCount = zc
			positive = toBuckets(posIdx)
			negative = toBuckets(negIdx)
			return
		}
		scale--
	}
}

// bucketIndex returns the OTel exponential-histogram bucket index of
// v at the given scale: ceil(log_gamma(|v|)), gamma = 2^(2^-scale).
func bucketIndex(scale int32, v float64) int64 {
	gamma := math.Pow(2, math.Pow(2, -float64(scale)))
	return int64(math.Ceil(math.Log(math.Abs(v)) / math.Log(gamma)))
}

func span(idx map[int64]uint64) int {
	if len(idx) == 0 {
		return 0
	}
	min, max := int64(math.MaxInt64), int64(math.MinInt64)
	for i := range idx {
		if i < min {
			min = i
		}
		if i > max {
			max = i
		}
	}
	return int(max-min) + 1
}

func toBuckets(idx map[int64]uint64) expHistogramBuckets {
	if len(idx) == 0 {
		return expHistogramBuckets{}
	}
	min, max := int64(math.MaxInt64), int64(math.MinInt64)
	for i := range idx {
		if i < min {
			min = i
		}
		if i > max {
			max = i
		}
	}
	counts := make([]uint64, max-min+1)
	for i, c := range idx {
		counts[i-min] = c
	}
	return expHistogramBuckets{Offset: int32(min), Counts: counts}
}
