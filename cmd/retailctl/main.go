// Command retailctl runs the RetailBrain analytics against a CSV file without
// starting the HTTP service.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
