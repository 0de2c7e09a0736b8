package main

import (
	"enkadb/cli"
)

func main() {
	cli.Start()
}
