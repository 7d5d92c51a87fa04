// Command vectortile decodes and converts Mapbox Vector Tiles from the
// command line. All subcommands live in the cmd package; this file is
// the thin binary entrypoint cobra recommends.
package main

import "github.com/valpere/vectortile/cmd"

func main() {
	cmd.Execute()
}
