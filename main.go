package main

import "ngview/cmd"

func main() {
	cmd.Execute()
}
