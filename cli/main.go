package main

import (
	"os"

	"github.com/ankit-chaubey/image-metadata-report/core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		core.PrintError(err.Error())
		os.Exit(1)
	}
}
