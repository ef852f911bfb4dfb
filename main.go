package main

import (
	"tdms-savior/cli"
)

func main() {
	cli.Start()
}
