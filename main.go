package main

import "github.com/mikematt33/ghscope/internal/cli"

func main() {
	cli.Execute()
}
