package compression

import "math"

// Megabyte is the unit used for user-facing size limits.
const Megabyte = 1024 * 1024

// MegabytesToBytes converts a megabyte amount into whole bytes.
func MegabytesToBytes(mb float64) int64 {
	return int64(math.Round(mb * Megabyte))
}

// BytesToMegabytes converts a byte count into megabytes.
func BytesToMegabytes(b int64) float64 {
	return float64(b) / Megabyte
}

// Allocate splits the total limit, minus the fixed document overhead, evenly
// across imageCount images. The result may be zero or negative when the
// overhead exceeds the limit; the compressor treats that as "use the floor".
// Callers must not convert zero images; Allocate returns 0 in that case.
func Allocate(totalLimitBytes, overheadBytes int64, imageCount int) int64 {
	if imageCount < 1 {
		return 0
	}
	return (totalLimitBytes - overheadBytes) / int64(imageCount)
}
