// semtime resolves Unix timestamps, date strings and semantic time
// expressions such as "now -1d <d" to instants.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/semtime/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
