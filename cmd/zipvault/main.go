// Command zipvault is a CLI wrapper over the zipvault ZIP decoder.
package main

import "github.com/alec-rabold/zipvault/cmd"

// version is set during build via -ldflags.
var version = "dev"

func main() {
	cmd.Execute(version)
}
