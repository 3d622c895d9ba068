package main

import "github.com/liftedinit/propchain/cmd/propchain"

func main() {
	propchain.Execute()
}
