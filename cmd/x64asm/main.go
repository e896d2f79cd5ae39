package main

import "github.com/keurnel/x64asm/cmd/x64asm/cmd"

func main() {
	cmd.Execute()
}
