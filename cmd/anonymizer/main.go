package main

import (
	"fmt"
	"os"
)

var GitSHA = "NA"

func main() {
	if err := newRootCmd(GitSHA).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
