// Command schemamap infers ORM mapping metadata from a relational schema.
package main

import (
	"os"

	"github.com/syssam/schemamap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
