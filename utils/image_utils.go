package utils

import (
	"fmt"
	"strings"
)

const storageURLPrefix = "https://storage.googleapis.com/"

// ExtractObjectPath returns the object path of a public storage URL inside
// bucket. URLs pointing anywhere else are rejected so that only images this
// service uploaded are ever deleted.
func ExtractObjectPath(url, bucket string) (string, error) {
	if !strings.HasPrefix(url, storageURLPrefix) {
		return "", fmt.Errorf("not a storage URL: %s", url)
	}

	parts := strings.SplitN(strings.TrimPrefix(url, storageURLPrefix), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid storage URL format: %s", url)
	}
	if parts[0] != bucket {
		return "", fmt.Errorf("URL belongs to bucket %q, not %q", parts[0], bucket)
	}

	return parts[1], nil
}
