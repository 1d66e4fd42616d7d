package main

import "github.com/pitcast/pitcast/cmd"

func main() {
	cmd.Execute()
}
