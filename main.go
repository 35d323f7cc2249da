package main

import "github.com/gridfabric/topoxml/cmd"

func main() {
	cmd.Execute()
}
