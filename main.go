package main

import "github.com/a01110946/extraction-validation-engine/cmd"

func main() {
	cmd.Execute()
}
