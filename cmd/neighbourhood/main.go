package main

import "github.com/mustaphathe3rd/neighbourhood/internal/cli"

func main() {
	cli.Execute()
}
