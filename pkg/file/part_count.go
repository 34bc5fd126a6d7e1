package file

// CalculatePartCount returns ceil(sizeBytes / partSizeBytes), never less than one.
// The caller enforces the upper limit.
func CalculatePartCount(sizeBytes, partSizeBytes int64) int64 {
	if partSizeBytes <= 0 || sizeBytes <= 0 {
		return 1
	}
	count := sizeBytes / partSizeBytes
	if sizeBytes%partSizeBytes != 0 {
		count++
	}
	return count
}
