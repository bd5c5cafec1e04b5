package main

import "github.com/Fichusgg/casa-score-br/cmd"

func main() {
	cmd.Execute()
}
