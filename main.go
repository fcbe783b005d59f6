package main

import "github.com/fkesheh/mcpsh/cmd"

func main() {
	cmd.Execute()
}
