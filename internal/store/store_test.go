package store

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	field := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
	times := []float64{0, 0.1, 0.2, 0.3}

	run := FromField("ode", 116, 30, 2, times, field)
	if run.Vertices != 3 {
		t.Fatalf("expected 3 vertices, got %d", run.Vertices)
	}
	if len(run.Field) != 3 || len(run.Field[0]) != 4 {
		t.Fatal("field shape not preserved")
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := SaveJSON(path, run); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if loaded.Method != "ode" || loaded.GammaS != 116 || loaded.RS != 30 {
		t.Errorf("metadata not preserved: %+v", loaded)
	}
	for i := range run.Field {
		for j := range run.Field[i] {
			if loaded.Field[i][j] != run.Field[i][j] {
				t.Fatalf("field mismatch at (%d,%d)", i, j)
			}
		}
	}
	for i, tm := range run.Times {
		if loaded.Times[i] != tm {
			t.Fatalf("times mismatch at %d", i)
		}
	}
}

func TestLoadJSON_Missing(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
