package main

import "github.com/rthearn/ivory/server"

func main() {
	server.Start()
}
