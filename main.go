package main

import "github.com/josephlewis42/nsh/cmd"

func main() {
	cmd.Execute()
}
