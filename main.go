package main

import "github.com/RooCodeInc/convo-viewer/cmd"

func main() {
	cmd.Execute()
}
