package main

import "github.com/piwi3910/cutstock/cmd/cutstock/cmd"

func main() {
	cmd.Execute()
}
