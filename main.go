package main

import "github.com/deploymenttheory/go-acpiview/cmd"

func main() {
	cmd.Execute()
}
