package main

import "github.com/threadlingo/threadlingo/cmd"

func main() {
	cmd.Execute()
}
