// Command mvr resolves Move Registry names from the command line.
//
//	mvr package @suifrens/core
//	mvr type @suifrens/core::suifren::SuiFren
//	mvr target @suifrens/core::mint::new --network mainnet
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
