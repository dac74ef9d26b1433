// SPDX-License-Identifier: MIT

// Command fastadj computes degrees, the normalized-Laplacian norm and the
// smallest normalized-Laplacian eigenpairs of a kernel adjacency matrix over
// a CSV point cloud, without forming the matrix.
//
//	fastadj degree --points pts.csv --sigma 0.5
//	fastadj norm   --points pts.csv --kernel matern12 --profile fine
//	fastadj eigs   --points pts.csv --k 6 --format json
//	fastadj eigs   --config run.yaml --k 10
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fastadj:", err)
		os.Exit(1)
	}
}
