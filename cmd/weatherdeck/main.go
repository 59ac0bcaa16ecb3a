package main

import (
	"github.com/i474232898/weatherdeck/internal/cli"
)

func main() {
	cli.Execute()
}
