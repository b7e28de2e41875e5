package main

import "github.com/mmynk/iouledger/internal/cli"

func main() {
	cli.Execute()
}
