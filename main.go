package main

import "github.com/KaramelBytes/docbump-cli/cmd"

func main() {
	cmd.Execute()
}
