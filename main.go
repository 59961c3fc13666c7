package main

import "github.com/fernandopv429/data-gemini-visualizer/cmd"

func main() {
	cmd.Execute()
}
