//go:build cgo

package database

import (
	_ "github.com/godror/godror" // Oracle driver (OCI), registered as "godror"; requires cgo
)
