package main

import "deblinger/internal/cli"

func main() {
	cli.Execute()
}
