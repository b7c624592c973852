// chatwidget is a terminal chat panel for a /chat reply endpoint.
package main

import "github.com/linanwx/chatwidget/cmd"

func main() {
	cmd.Execute()
}
