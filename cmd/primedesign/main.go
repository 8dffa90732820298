// cmd/primedesign/main.go
package main

import (
	"github.com/seqfoundry/primedesign/internal/appshell"
	"github.com/seqfoundry/primedesign/internal/cli"
	"github.com/seqfoundry/primedesign/internal/version"
)

func main() {
	appshell.Main(cli.NewRootCmd(version.Version))
}
