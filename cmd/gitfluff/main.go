package main

import (
	"os"

	"github.com/dshills/gitfluff/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
