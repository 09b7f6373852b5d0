package main

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
)

func main() {
	root, c := newRootCmd(os.Stdout)
	err := multierr.Append(root.Execute(), c.close())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
