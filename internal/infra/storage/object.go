// Package storage implements the file host on top of object storage.
package storage

import (
	"path"
	"strconv"
	"strings"
	"time"
)

// objectKey joins the configured prefix and the caller's identifier.
// Re-uploading the same identifier overwrites the previous object.
func objectKey(prefix, identifier string) string {
	identifier = strings.TrimLeft(identifier, "/")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return identifier
	}

	return path.Join(prefix, identifier)
}

// publicURL appends a version parameter so clients never keep a stale copy
// of an overwritten object.
func publicURL(base, key string, version time.Time) string {
	return strings.TrimRight(base, "/") + "/" + key + "?v=" + strconv.FormatInt(version.Unix(), 10)
}
