package main

import "github.com/naka-gawa/gh-portfolio/cmd"

func main() {
	cmd.Execute()
}
