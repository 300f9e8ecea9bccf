package main

import "w3stringsx/internal/cli"

func main() {
	cli.Execute()
}
