package main

import "github.com/they4kman/prizegrid/cmd"

func main() {
	cmd.Execute()
}
