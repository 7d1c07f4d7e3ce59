package main

// Initializes and runs the ndndface demo CLI.
func main() {
	CmdRoot().Execute()
}
