package main

import "braindumpBackend/cmd"

func main() {
	cmd.Execute()
}
