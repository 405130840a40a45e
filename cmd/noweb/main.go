package main

import "noweb/internal/cli"

func main() {
	cli.Execute()
}
