package main

import (
	"os"

	"github.com/birchlang/birch/cmd/birch/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
