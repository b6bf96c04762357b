//go:build !harmonic_checked

package core

const checkedBuild = false
