package main

import (
	"os"

	"github.com/raveheart1/gapcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
