package model

import (
	"fmt"
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// Coordinate is a point in plain decimal degrees (WGS 84, no projection)
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// String returns "lat,lng"
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lng)
}

// Validate checks the coordinate is on the globe
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return goerr.New("coordinate is not a number", goerr.V("lat", c.Lat), goerr.V("lng", c.Lng))
	}
	if c.Lat < -90 || c.Lat > 90 {
		return goerr.New("latitude out of range", goerr.V("lat", c.Lat))
	}
	if c.Lng < -180 || c.Lng > 180 {
		return goerr.New("longitude out of range", goerr.V("lng", c.Lng))
	}
	return nil
}

// BoundingBox is a fixed rectangular region used to map points onto a viewport
type BoundingBox struct {
	North float64 `json:"north" yaml:"north"`
	South float64 `json:"south" yaml:"south"`
	East  float64 `json:"east" yaml:"east"`
	West  float64 `json:"west" yaml:"west"`
}

// CaucaBoundingBox covers the Cauca department
var CaucaBoundingBox = BoundingBox{
	North: 3.35,
	South: 1.15,
	East:  -75.75,
	West:  -77.95,
}

// Validate checks the box has a positive extent on both axes
func (b BoundingBox) Validate() error {
	if b.North <= b.South {
		return goerr.New("bounding box north must be greater than south",
			goerr.V("north", b.North),
			goerr.V("south", b.South))
	}
	if b.East <= b.West {
		return goerr.New("bounding box east must be greater than west",
			goerr.V("east", b.East),
			goerr.V("west", b.West))
	}
	return nil
}

// Contains reports whether c lies within the box, edges included
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat <= b.North && c.Lat >= b.South && c.Lng <= b.East && c.Lng >= b.West
}

// Center returns the midpoint of the box
func (b BoundingBox) Center() Coordinate {
	return Coordinate{
		Lat: (b.North + b.South) / 2,
		Lng: (b.East + b.West) / 2,
	}
}

// Position is a viewport placement in percent of width (X) and height (Y)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
