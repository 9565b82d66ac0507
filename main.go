package main

import "webguard/src/handler/cli"

func main() {
	cli.Run()
}
