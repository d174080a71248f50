package main

import "github.com/MrJamesThe3rd/presence/cmd/presence/internal/cli"

func main() {
	cli.Execute()
}
