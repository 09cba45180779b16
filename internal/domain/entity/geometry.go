// Package entity defines domain entities for the embedding bridge.
package entity

import "fmt"

// Geometry is a native window region in toolkit coordinates.
type Geometry struct {
	X, Y          int // Origin relative to the parent window
	Width, Height int
}

// Size is a width/height pair, used for preferred-size hints.
type Size struct {
	Width, Height int
}

// NewGeometry builds a geometry from origin and size.
func NewGeometry(x, y, width, height int) Geometry {
	return Geometry{X: x, Y: y, Width: width, Height: height}
}

// Size returns the size component of the region.
func (g Geometry) Size() Size {
	return Size{Width: g.Width, Height: g.Height}
}

// IsEmpty reports whether the region has no drawable area.
func (g Geometry) IsEmpty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Center returns the center point of the rectangle.
func (g Geometry) Center() (cx, cy int) {
	return g.X + g.Width/2, g.Y + g.Height/2
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}
