package model

// Region is a municipality with the map center and zoom used to show it
type Region struct {
	Name       string     `json:"name" yaml:"name"`
	Coordinate Coordinate `json:"coordinate" yaml:",inline"`
	Zoom       int        `json:"zoom" yaml:"zoom"`
}
