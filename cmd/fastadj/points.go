// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// readPoints parses one point per CSV record. Lines starting with '#' are
// comments; a first record that is not numeric is taken as a header.
func readPoints(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var pts [][]float64
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		row := make([]float64, len(rec))
		var parseErr error
		for i, field := range rec {
			if row[i], parseErr = strconv.ParseFloat(strings.TrimSpace(field), 64); parseErr != nil {
				break
			}
		}
		if parseErr != nil {
			if line == 0 {
				continue
			}
			return nil, fmt.Errorf("points: record %d: %w", line+1, parseErr)
		}
		pts = append(pts, row)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("points: no records")
	}

	return pts, nil
}

// openPoints reads from path, or from stdin when path is "-".
func openPoints(path string, stdin io.Reader) ([][]float64, error) {
	if path == "-" {
		return readPoints(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	defer f.Close()

	return readPoints(f)
}
