package solver

import (
	"errors"
	"testing"

	"github.com/san-kum/neurowave/internal/wave"
)

func TestNew(t *testing.T) {
	sol, err := New(wave.MethodODE)
	if err != nil {
		t.Fatalf("New(MethodODE) failed: %v", err)
	}
	if _, ok := sol.(*ODE); !ok {
		t.Errorf("expected *ODE, got %T", sol)
	}

	sol, err = New(wave.MethodFourier)
	if err != nil {
		t.Fatalf("New(MethodFourier) failed: %v", err)
	}
	if _, ok := sol.(*Fourier); !ok {
		t.Errorf("expected *Fourier, got %T", sol)
	}
}

func TestNew_UnsupportedMethod(t *testing.T) {
	_, err := New(wave.Method(99))
	if !errors.Is(err, wave.ErrUnsupportedMethod) {
		t.Errorf("expected ErrUnsupportedMethod, got %v", err)
	}
}
