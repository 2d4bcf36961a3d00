package basis

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/neurowave/internal/wave"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		vertices    int
		modes       int
		eigenvalues int
		wantErr     bool
	}{
		{"square", 4, 4, 4, false},
		{"tall", 8, 3, 3, false},
		{"more modes than vertices", 3, 4, 4, true},
		{"eigenvalue count mismatch", 4, 3, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modes := mat.NewDense(tt.vertices, tt.modes, nil)
			_, err := New(modes, make([]float64, tt.eigenvalues))
			if tt.wantErr {
				if !errors.Is(err, wave.ErrDimensionMismatch) {
					t.Errorf("expected ErrDimensionMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestHarmonic(t *testing.T) {
	b, err := Harmonic(32, 8)
	if err != nil {
		t.Fatalf("Harmonic failed: %v", err)
	}
	if b.NumVertices() != 32 || b.NumModes() != 8 {
		t.Fatalf("unexpected shape: %d x %d", b.NumVertices(), b.NumModes())
	}
	if b.Eigenvalues[0] != 0 {
		t.Errorf("first eigenvalue should be 0, got %g", b.Eigenvalues[0])
	}
	for k := 1; k < 8; k++ {
		if b.Eigenvalues[k] <= b.Eigenvalues[k-1] {
			t.Errorf("eigenvalues not increasing at %d", k)
		}
	}
	want := math.Pi * math.Pi
	if math.Abs(b.Eigenvalues[1]-want) > 1e-12 {
		t.Errorf("eigenvalue 1: expected pi^2, got %g", b.Eigenvalues[1])
	}
}

func TestProjectReconstruct_RoundTrip(t *testing.T) {
	// A full square basis inverts exactly: reconstruct(project(x)) == x.
	const n = 8
	b, err := Harmonic(n, n)
	if err != nil {
		t.Fatalf("Harmonic failed: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	field := mat.NewDense(n, 5, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 5; j++ {
			field.Set(i, j, rng.NormFloat64())
		}
	}

	coeffs, err := b.Project(field)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	back, err := b.Reconstruct(coeffs)
	if err != nil {
		t.Fatalf("Reconstruct failed: %v", err)
	}

	var diff mat.Dense
	diff.Sub(field, back)
	if norm := mat.Norm(&diff, 2); norm > 1e-8 {
		t.Errorf("round trip error too high: %e", norm)
	}
}

func TestProject_DimensionMismatch(t *testing.T) {
	b, _ := Harmonic(8, 4)
	field := mat.NewDense(6, 3, nil)
	if _, err := b.Project(field); !errors.Is(err, wave.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestReconstruct_DimensionMismatch(t *testing.T) {
	b, _ := Harmonic(8, 4)
	series := mat.NewDense(5, 3, nil)
	if _, err := b.Reconstruct(series); !errors.Is(err, wave.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestProject_ConstantField(t *testing.T) {
	// a constant field is exactly the k=0 mode
	b, _ := Harmonic(16, 4)
	field := mat.NewDense(16, 2, nil)
	for i := 0; i < 16; i++ {
		field.Set(i, 0, 1)
		field.Set(i, 1, 2)
	}

	coeffs, err := b.Project(field)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if math.Abs(coeffs.At(0, 0)-1) > 1e-10 || math.Abs(coeffs.At(0, 1)-2) > 1e-10 {
		t.Errorf("k=0 coefficients: got %g, %g", coeffs.At(0, 0), coeffs.At(0, 1))
	}
	for k := 1; k < 4; k++ {
		for j := 0; j < 2; j++ {
			if math.Abs(coeffs.At(k, j)) > 1e-8 {
				t.Errorf("mode %d should have zero coefficient, got %g", k, coeffs.At(k, j))
			}
		}
	}
}
