// Command ofximport converts OFX/QFX statements into ledger entries.
package main

import (
	"github.com/golang/glog"
)

func main() {
	defer glog.Flush()
	Execute()
}
