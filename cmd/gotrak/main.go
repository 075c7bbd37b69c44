package main

import "github.com/Edwardzzz-c/gotrak/internal/cmd"

func main() {
	cmd.Execute()
}
