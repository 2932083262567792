package videos

import "fmt"

// BuildFormat produces the yt-dlp format-selection expression for the given
// resolution token ("best" or a maximum height such as "1080"). m4a audio is
// preferred so merging into mp4 does not re-encode; each fallback tier keeps
// the height bound for numeric resolutions.
func BuildFormat(resolution string) string {
	if resolution == "best" {
		return "bestvideo+bestaudio[ext=m4a]/bestvideo+bestaudio/best"
	}
	return fmt.Sprintf(
		"bestvideo[height<=%s]+bestaudio[ext=m4a]/bestvideo[height<=%s]+bestaudio/best[height<=%s]",
		resolution, resolution, resolution,
	)
}
