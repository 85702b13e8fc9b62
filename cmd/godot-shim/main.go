package main

import (
	"fmt"
	"os"

	"github.com/terassyi/gdvm/internal/shim"
)

func main() {
	if err := shim.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "failed to exec gdvm: %v\n", err)
		os.Exit(1)
	}
}
