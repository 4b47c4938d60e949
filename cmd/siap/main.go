package main

import "github.com/siap-parepare/siap-cli/internal/client/cli"

func main() {
	cli.Execute()
}
