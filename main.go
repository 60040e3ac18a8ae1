package main

import "github.com/sinanata/amygdala/cmd"

func main() {
	cmd.Execute()
}
