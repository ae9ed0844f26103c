package main

import "github.com/iandelaney/youtran/internal/adapters/cli"

func main() {
	cli.Execute()
}
