package main

import (
	"github.com/tonmint/tonmint/internal/command/root"
)

//	@title			tonmint API
//	@version		1.0.0
//	@description	Builds jetton mint payloads and derives jetton wallet addresses.
//	@BasePath		/

func main() {
	root.NewRootCommand().Execute()
}
