package utils

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	dataImagePrefix  = "data:image/"
	defaultExtension = "jpeg"
)

// ImageNamingParams - generation metadata encoded into a download file name
type ImageNamingParams struct {
	URL            string
	IsUpscaled     bool
	Prompt         string
	Seed           int64
	InferenceSteps float64
	GuidanceScale  float64
}

// GetImageFileName - [s_{seed}]-[gs_{guidance}]-[is_{steps}]-[u_{0|1}]-{prompt}.{ext}
// The prompt is used as-is; callers writing to disk must sanitize it themselves.
func GetImageFileName(p ImageNamingParams) string {
	upscaled := "0"
	if p.IsUpscaled {
		upscaled = "1"
	}
	return fmt.Sprintf("[s_%d]-[gs_%s]-[is_%s]-[u_%s]-%s.%s",
		p.Seed,
		FormatNumber(p.GuidanceScale),
		FormatNumber(p.InferenceSteps),
		upscaled,
		p.Prompt,
		imageExtension(p.URL),
	)
}

// FormatNumber - shortest decimal form of f (7 -> "7", 7.5 -> "7.5")
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// imageExtension - MIME subtype for data URIs, otherwise the text after the last dot
func imageExtension(url string) string {
	if strings.HasPrefix(url, dataImagePrefix) {
		mediaType, _, _ := strings.Cut(url, ";")
		return strings.Split(mediaType, "/")[1]
	}

	idx := strings.LastIndex(url, ".")
	if idx < 0 || idx == len(url)-1 {
		return defaultExtension
	}
	return url[idx+1:]
}
