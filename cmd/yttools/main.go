package main

import "yttools/internal/cli"

func main() {
	cli.Main()
}
