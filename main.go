package main

import "github.com/RyanBlaney/dtmf-codec/cmd"

func main() {
	cmd.Execute()
}
