package main

import "github.com/ericfisherdev/noteclip/cmd/noteclipctl/cmd"

func main() {
	cmd.Execute()
}
