package main

import "github.com/longkey1/sunyata/cmd"

func main() {
	cmd.Execute()
}
