package main

import "hrdocs/internal/app/server"

func main() {
	server.Run()
}
