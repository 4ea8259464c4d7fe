package main

import "github.com/caoccao/javet-buildkit/cmd"

func main() {
	cmd.Execute()
}
