package main

import "github.com/jannisp/hourglass/cmd"

func main() {
	cmd.Execute()
}
