package main

import (
	"os"

	"github.com/maasutil/maascli/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:]))
}
