package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatOutcome renders a progress event as a one-line status for
// terminal output.
func FormatOutcome(e ProgressEvent, urlWidth int) string {
	prefix := fmt.Sprintf("[%d/%d] ", e.Completed, e.Total)
	switch e.Type {
	case ProgressScored:
		return fmt.Sprintf("%s%s score=%.2f", prefix, TruncateURL(e.URL, urlWidth), e.Score)
	case ProgressSkipped:
		return fmt.Sprintf("%s%s skipped (%s)", prefix, TruncateURL(e.URL, urlWidth), e.Outcome)
	case ProgressQuery:
		return fmt.Sprintf("%squery %q", prefix, e.Query)
	case ProgressQueryFailed:
		return fmt.Sprintf("%squery %q failed: %v", prefix, e.Query, e.Error)
	default:
		return ""
	}
}
