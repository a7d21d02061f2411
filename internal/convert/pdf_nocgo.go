//go:build !cgo

package convert

import "fmt"

// rasterizePDF needs the MuPDF bindings, which require cgo. Pure-Go builds
// keep the chain shape and simply report the strategy unavailable.
func rasterizePDF(src, dst string) error {
	return fmt.Errorf("pdf rasterization unavailable: this binary was built without cgo")
}
