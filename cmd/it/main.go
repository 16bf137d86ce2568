package main

import "it/cmd/it/cmd"

func main() {
	cmd.Execute()
}
