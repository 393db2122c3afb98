package model_test

import (
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func ptr[T any](v T) *T { return &v }

func TestGeoConfigValidate(t *testing.T) {
	t.Run("Empty config is valid", func(t *testing.T) {
		gt.NoError(t, (&model.GeoConfig{}).Validate())
	})

	t.Run("Margin bounds", func(t *testing.T) {
		gt.NoError(t, (&model.GeoConfig{Margin: ptr(2.0)}).Validate())
		gt.Error(t, (&model.GeoConfig{Margin: ptr(-1.0)}).Validate())
		gt.Error(t, (&model.GeoConfig{Margin: ptr(50.0)}).Validate())
	})

	t.Run("Threshold must be positive", func(t *testing.T) {
		gt.Error(t, (&model.GeoConfig{RelevanceThreshold: ptr(0.0)}).Validate())
	})

	t.Run("Duplicate region", func(t *testing.T) {
		cfg := &model.GeoConfig{Regions: []model.Region{
			{Name: "Popayán", Coordinate: model.Coordinate{Lat: 2.4, Lng: -76.6}, Zoom: 12},
			{Name: "Popayán", Coordinate: model.Coordinate{Lat: 2.4, Lng: -76.6}, Zoom: 12},
		}}
		gt.Error(t, cfg.Validate())
	})

	t.Run("Invalid box", func(t *testing.T) {
		cfg := &model.GeoConfig{BoundingBox: &model.BoundingBox{North: 1, South: 2, East: 0, West: -1}}
		gt.Error(t, cfg.Validate())
	})
}
