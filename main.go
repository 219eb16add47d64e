package main

import "github.com/insterion/ev-log/cmd"

func main() {
	cmd.Execute()
}
