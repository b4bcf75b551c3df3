package main

import "crycurate/cmd"

func main() {
	cmd.Execute()
}
