package main

import (
	"os"

	"github.com/mvp-joe/api-inventory/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
