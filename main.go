package main

import "cli-grid/cmd"

func main() {
	cmd.Execute()
}
