package errors

import (
	"path/filepath"
	"strings"
)

// MaxDimension bounds tile width and height. The search is exponential in
// both; anything beyond this is a typo rather than a request.
const MaxDimension = 64

// ValidateParams checks the separation parameter k and the tile size w×h.
//
// All three must be positive. k may exceed the tile size: such configurations
// are legal and simply produce very restrictive (possibly empty) tile sets.
func ValidateParams(k, w, h int) error {
	if k <= 0 {
		return New(ErrCodeInvalidConfig, "k must be a positive integer, got %d", k)
	}
	if w <= 0 {
		return New(ErrCodeInvalidConfig, "width must be a positive integer, got %d", w)
	}
	if h <= 0 {
		return New(ErrCodeInvalidConfig, "height must be a positive integer, got %d", h)
	}
	if w > MaxDimension || h > MaxDimension {
		return New(ErrCodeInvalidConfig, "tile size %dx%d exceeds the maximum of %d", w, h, MaxDimension)
	}
	return nil
}

// ValidateBitcount checks the number of label bits per node for labeling.
func ValidateBitcount(bits int) error {
	if bits <= 0 {
		return New(ErrCodeInvalidConfig, "bitcount must be a positive integer, got %d", bits)
	}
	if bits > 16 {
		return New(ErrCodeInvalidConfig, "bitcount %d is too large (max 16)", bits)
	}
	return nil
}

// ValidateWorkers checks a worker pool size. Zero means "use the default".
func ValidateWorkers(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidConfig, "workers must not be negative, got %d", n)
	}
	return nil
}

// ValidatePath validates a user-supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if r < 0x20 {
			return New(ErrCodeInvalidPath, "path contains control characters")
		}
	}
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}
	return nil
}
