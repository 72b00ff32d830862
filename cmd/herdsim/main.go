// Entry point for the herdsim command line; commands live in internal/cli.
package main

import (
	"github.com/mamadbah2/herdsim/internal/cli"
)

func main() {
	cli.Execute()
}
