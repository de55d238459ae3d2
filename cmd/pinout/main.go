package main

import "github.com/OpenTraceLab/OpenTracePinout/cmd/pinout/cmd"

func main() {
	cmd.Execute()
}
