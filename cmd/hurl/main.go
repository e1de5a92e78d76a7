package main

import "github.com/abdul-hamid-achik/hurl/cmd/hurl/commands"

func main() {
	commands.Execute()
}
