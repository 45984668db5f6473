package utils

// NODETOL is the tolerance used when comparing node coordinates and interpolated values
const (
	NODETOL = 1.e-12
)
