package main

import "github.com/Sena-ops/lintmerge/cmd"

func main() {
	cmd.Execute()
}
