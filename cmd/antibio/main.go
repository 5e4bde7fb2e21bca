// antibio turns the bacteria survival table of a mouse experiment into
// filtered CSV views and charts.
//
// Usage:
//
//	antibio [--config=<yaml>] [--input-dir=input] [--output-dir=output] [--images-dir=images]
//	        [--file=data_small.csv] [--delimiter=';'] [--distribution-day=<n>] [--log-level=info]
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
