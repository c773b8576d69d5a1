package main

import (
	"os"

	"github.com/point-o/sham/pkg/cli"
)

func main() {
	os.Exit(cli.Run())
}
