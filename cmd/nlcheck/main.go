package main

import "github.com/OpenTraceLab/nlcheck/cmd/nlcheck/cmd"

func main() {
	cmd.Execute()
}
