package file

import (
	"bytes"
	"fmt"
)

// ValidatePartETag checks the ETag returned for an uploaded part against the
// local bytes of that part.
func ValidatePartETag(etag string, part []byte) error {
	calculated, err := CalculatePartHash(bytes.NewReader(part))
	if err != nil {
		return err
	}
	if got := NormalizeETag(etag); got != calculated {
		return fmt.Errorf("etag mismatch: store returned %q, local part hashes to %q", got, calculated)
	}
	return nil
}
