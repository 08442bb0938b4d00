package main

import "github.com/hupe1980/nvstore/cmd/nvstore/cmd"

func main() {
	cmd.Execute()
}
