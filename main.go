package main

import "github.com/twiced-technology-gmbh/agegate/cmd"

func main() {
	cmd.Execute()
}
