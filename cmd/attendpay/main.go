package main

import "github.com/aalvaropc/attendpay/internal/cli"

func main() {
	cli.Execute()
}
