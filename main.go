package main

import "github.com/nipart/nipart-go/cmd"

func main() {
	cmd.Execute()
}
