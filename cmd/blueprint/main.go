package main

import "github.com/mvp-joe/blueprint/internal/cli"

func main() {
	cli.Execute()
}
