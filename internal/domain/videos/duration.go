package videos

import "fmt"

// FormatDuration renders seconds as zero-padded MM:SS. Fractional seconds are
// truncated. Minutes are not wrapped, so long videos render as e.g. 125:07.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
