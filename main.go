package main

import "github.com/ritik-gupta001/nexalyze/cmd"

func main() {
	cmd.Execute()
}
