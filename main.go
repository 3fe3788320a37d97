package main

import (
	"os"

	"github.com/conneroisu/a11yscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
