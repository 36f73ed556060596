package main

import (
	"os"

	"github.com/fakhrymubarak/weather-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
