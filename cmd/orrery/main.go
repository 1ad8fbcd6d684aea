// Command orrery builds and inspects Orrery type catalog snapshots.
package main

import "github.com/orrery-engine/orrery/internal/cli"

func main() {
	cli.Execute()
}
