package utils

import "fmt"

// fileSizeUnits are the suffixes used by FormatFileSize, smallest first.
var fileSizeUnits = []string{"B", "KB", "MB"}

// FormatFileSize renders a byte count in a human-readable form with two
// decimal places, capped at megabytes — the documents this system seals are
// small by design.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(fileSizeUnits)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f %s", size, fileSizeUnits[unit])
}
