// Package compileinfoprint is imported by commands for the side effect of
// printing their build information to stderr at startup.
package compileinfoprint

import "github.com/human-pangenomics/hprccatalog/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
