package main

import "github.com/endorses/seqscan/cmd"

func main() {
	cmd.Execute()
}
