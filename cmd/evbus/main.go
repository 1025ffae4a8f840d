// Command evbus runs the event bus demo and its introspection API.
package main

import "github.com/sergheevdev/event-bus/internal/cli"

func main() { cli.Main() }
