package audio

import (
	"encoding/binary"
	"math"
)

// MeterWindow is the number of most recent samples a level reading covers.
const MeterWindow = 256

// Linear16ToFloat32 decodes little-endian signed 16-bit samples into
// [-1, 1]. A trailing odd byte is ignored.
func Linear16ToFloat32(pcm []byte) []float32 {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / 32768
	}
	return samples
}

// Float32ToLinear16 encodes samples into dst, which must hold 2 bytes per
// sample. Samples are clipped to [-1, 1].
func Float32ToLinear16(samples []float32, dst []byte) {
	for i, sample := range samples {
		sample = max(-1, min(1, sample))
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(int16(sample*math.MaxInt16)))
	}
}

// RMS is the root-mean-square energy of samples.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, sample := range samples {
		sum += float64(sample) * float64(sample)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Level maps a window of samples to a display level in [0, 1].
func Level(samples []float32) float64 {
	return max(0, min(1, RMS(samples)*2))
}
