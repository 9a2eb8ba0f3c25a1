package main

import (
	"github.com/pongelo/pongelo/internal/cli"
)

func main() {
	cli.Execute()
}
