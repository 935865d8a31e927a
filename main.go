package main

import "github.com/they4kman/gosenku/cmd"

func main() {
	cmd.Execute()
}
