// Package store persists simulation runs as JSON for later plotting and
// export.
package store

import (
	"encoding/json"
	"os"

	"gonum.org/v1/gonum/mat"
)

type Run struct {
	Method   string      `json:"method"`
	GammaS   float64     `json:"gamma_s"`
	RS       float64     `json:"r_s"`
	Times    []float64   `json:"times"`
	Field    [][]float64 `json:"field"` // one row per vertex
	Vertices int         `json:"vertices"`
	Modes    int         `json:"modes"`
}

// FromField flattens a vertices x T activity field into a serializable run.
func FromField(method string, gammaS, rs float64, modes int, times []float64, field *mat.Dense) *Run {
	v, t := field.Dims()
	rows := make([][]float64, v)
	for i := 0; i < v; i++ {
		row := make([]float64, t)
		mat.Row(row, i, field)
		rows[i] = row
	}
	return &Run{
		Method:   method,
		GammaS:   gammaS,
		RS:       rs,
		Times:    append([]float64(nil), times...),
		Field:    rows,
		Vertices: v,
		Modes:    modes,
	}
}

func SaveJSON(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

func LoadJSON(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
