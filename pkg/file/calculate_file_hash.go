package file

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// CalculatePartHash returns the hex MD5 of a part body, which is what S3
// reports as the ETag of a single uploaded part.
func CalculatePartHash(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash part: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// NormalizeETag strips the surrounding quotes S3 puts on ETag headers.
func NormalizeETag(etag string) string {
	return strings.Trim(strings.TrimSpace(etag), `"`)
}
