//go:build !cgo

package main

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/scudo/engine"
)

// engineNames lists the engines this build can misuse, default first
var engineNames = []string{"sim"}

func newNativeEngine() (engine.Engine, error) {
	return nil, errors.New("native engine requires cgo")
}
