package main

import "github.com/gabrielcpolitano/ponto/cmd"

func main() {
	cmd.Execute()
}
