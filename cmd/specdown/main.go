package main

import "specdown/cmd/specdown/commands"

func main() {
	commands.Execute()
}
