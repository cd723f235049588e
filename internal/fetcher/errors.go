package fetcher

import "errors"

// Fetch failure sentinels. Callers match them with errors.Is.
var (
	// ErrNetwork covers transport failures, invalid URLs and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrUnsupportedContent is returned when the response is not UTF-8 text.
	ErrUnsupportedContent = errors.New("unsupported content")
)
