package main

import "github.com/DukeRupert/courtside/internal/cli"

func main() {
	cli.Execute()
}
