package main

import "github.com/realbLanK993/water/cmd/water"

func main() {
	water.Execute()
}
