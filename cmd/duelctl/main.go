package main

import "github.com/pduel/puzzleduel/internal/cli"

func main() {
	cli.Execute()
}
