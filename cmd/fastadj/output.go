// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/wagnertheresa/prescaledFastAdj/spectral"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeDegree(w io.Writer, format string, deg []float64) error {
	if format == formatJSON {
		return writeJSON(w, struct {
			Degree []float64 `json:"degree"`
		}{deg})
	}
	for _, d := range deg {
		if _, err := fmt.Fprintf(w, "%.12g\n", d); err != nil {
			return err
		}
	}

	return nil
}

func writeNorm(w io.Writer, format string, est spectral.NormEstimate) error {
	if format == formatJSON {
		return writeJSON(w, struct {
			Norm       float64 `json:"norm"`
			Iterations int     `json:"iterations"`
			Converged  bool    `json:"converged"`
		}{est.Value, est.Iterations, est.Converged})
	}
	_, err := fmt.Fprintf(w, "norm\t%.12g\niterations\t%d\nconverged\t%t\n", est.Value, est.Iterations, est.Converged)

	return err
}

// writeEigs prints eigenvalues of L, the matching normalized-adjacency
// values 1 − λ and, when vectors is non-nil, the eigenvectors as columns.
func writeEigs(w io.Writer, format string, res *spectral.EigenResult, vectors *mat.Dense) error {
	adj := res.AdjacencyValues()
	if format == formatJSON {
		out := struct {
			Values          []float64   `json:"values"`
			AdjacencyValues []float64   `json:"adjacency_values"`
			Vectors         [][]float64 `json:"vectors,omitempty"`
			Restarts        int         `json:"restarts"`
			MatVecs         int         `json:"matvecs"`
			Converged       bool        `json:"converged"`
		}{Values: res.Values, AdjacencyValues: adj, Restarts: res.Restarts, MatVecs: res.MatVecs, Converged: res.Converged}
		if vectors != nil {
			_, k := vectors.Dims()
			for j := 0; j < k; j++ {
				out.Vectors = append(out.Vectors, mat.Col(nil, j, vectors))
			}
		}
		return writeJSON(w, out)
	}

	if _, err := fmt.Fprintln(w, "#\tlaplacian\tadjacency"); err != nil {
		return err
	}
	for i, v := range res.Values {
		if _, err := fmt.Fprintf(w, "%d\t%.12g\t%.12g\n", i, v, adj[i]); err != nil {
			return err
		}
	}
	if vectors == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%.8g\n", mat.Formatted(vectors))

	return err
}
