package main

import "lcatrace/cmd/lcatrace-cli/cmd"

func main() {
	cmd.Execute()
}
