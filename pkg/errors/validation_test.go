package errors

import (
	"testing"
)

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		k, w, h int
		wantErr bool
	}{
		{"smallest", 1, 1, 1, false},
		{"typical", 2, 4, 5, false},
		{"k larger than tile", 10, 2, 3, false},
		{"max size", 1, MaxDimension, MaxDimension, false},

		{"zero k", 0, 3, 3, true},
		{"negative k", -1, 3, 3, true},
		{"zero width", 1, 0, 3, true},
		{"zero height", 1, 3, 0, true},
		{"too wide", 1, MaxDimension + 1, 3, true},
		{"too tall", 1, 3, MaxDimension + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.k, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParams(%d, %d, %d) error = %v, wantErr %v", tt.k, tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateParams error code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateBitcount(t *testing.T) {
	for _, bits := range []int{1, 2, 8, 16} {
		if err := ValidateBitcount(bits); err != nil {
			t.Errorf("ValidateBitcount(%d) = %v, want nil", bits, err)
		}
	}
	for _, bits := range []int{0, -3, 17} {
		if err := ValidateBitcount(bits); err == nil {
			t.Errorf("ValidateBitcount(%d) = nil, want error", bits)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	if err := ValidateWorkers(0); err != nil {
		t.Errorf("ValidateWorkers(0) = %v, want nil", err)
	}
	if err := ValidateWorkers(8); err != nil {
		t.Errorf("ValidateWorkers(8) = %v, want nil", err)
	}
	if err := ValidateWorkers(-1); err == nil {
		t.Error("ValidateWorkers(-1) = nil, want error")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tiles.txt", false},
		{"nested", "out/k2/tiles.txt", false},

		{"empty", "", true},
		{"control char", "tiles\x01.txt", true},
		{"newline", "tiles\n.txt", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidTile,
		ErrCodeInvalidEdge, ErrCodeInvalidConstraint, ErrCodeInvalidPath,
		ErrCodeNotFound, ErrCodeFileNotFound,
		ErrCodeMalformedCNF, ErrCodeSolverFailure,
		ErrCodeCache, ErrCodeInternal, ErrCodeUnsupported,
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code %q", c)
		}
		seen[c] = true
	}
}
