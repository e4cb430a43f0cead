package transfer

import "strings"

// ValidatePart applies every acceptance rule for one uploaded part before
// any byte touches disk. currentSize is the destination's on-disk size at
// the time of the call (0 if the file does not exist yet).
func (l Limits) ValidatePart(partNumber, totalParts int, partLen, currentSize int64) error {
	if partNumber < 1 || totalParts < 1 {
		return newError(KindInvalidArgument, "part number and total parts must be at least 1")
	}
	if partNumber > totalParts {
		return newError(KindInvalidArgument, "part number %d exceeds declared total of %d", partNumber, totalParts)
	}
	if totalParts > l.MaxParts {
		return newError(KindCountLimit, "total parts %d exceeds the limit of %d", totalParts, l.MaxParts)
	}
	if partLen > l.ChunkSize {
		return newError(KindPartTooLarge, "part of %d bytes exceeds the chunk size of %d", partLen, l.ChunkSize)
	}
	// A short non-final part indicates a truncated read on the client side.
	if partNumber < totalParts && partLen != l.ChunkSize {
		return newError(KindMalformedPart, "non-final part must be exactly %d bytes, got %d", l.ChunkSize, partLen)
	}
	if currentSize+partLen > l.MaxFileSize {
		return newError(KindQuotaExceeded, "file would grow to %d bytes, the limit is %d", currentSize+partLen, l.MaxFileSize)
	}
	return nil
}

// ValidateName rejects destination names that could escape the upload
// directory. Names must be a single path component.
func ValidateName(name string) error {
	if name == "" {
		return newError(KindInvalidArgument, "file name is required")
	}
	if strings.ContainsAny(name, "/\\") {
		return newError(KindInvalidArgument, "file name must not contain path separators")
	}
	if name == "." || name == ".." {
		return newError(KindInvalidArgument, "file name must not be a directory reference")
	}
	return nil
}
