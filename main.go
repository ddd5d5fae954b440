package main

import "github.com/Norgate-AV/hlpack/cmd"

func main() {
	cmd.Execute()
}
