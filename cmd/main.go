package main

import (
	"fmt"
	"os"

	"github.com/rony4d/go-asset-shard/cmd/shard/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
