package main

import "ring-cli/cmd"

func main() {
	cmd.Execute()
}
