package main

import (
	"github.com/rostools/go-bagwriter/cli/baggen/cmd"
)

func main() {
	cmd.Execute()
}
