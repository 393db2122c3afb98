package mapview

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Backend names accepted by NewRenderer
const (
	BackendStatic = "static"
	BackendEmbed  = "embed"
	BackendTiles  = "tiles"
)

const osmAttribution = "© OpenStreetMap contributors"

// DefaultStaticURL is where the HTTP server exposes the bundled background
const DefaultStaticURL = "/static/cauca-map.svg"

// NewRenderer returns the renderer for a backend name
func NewRenderer(backend string) (interfaces.MapRenderer, error) {
	switch backend {
	case BackendStatic, "":
		return NewStatic(DefaultStaticURL), nil
	case BackendEmbed:
		return NewEmbed(), nil
	case BackendTiles:
		return NewTiles(), nil
	default:
		return nil, goerr.New("unknown map backend", goerr.V("backend", backend))
	}
}

// Static serves one pre-rendered background image of the whole box
type Static struct {
	url string
}

// NewStatic creates a Static renderer for an image URL
func NewStatic(imageURL string) *Static {
	return &Static{url: imageURL}
}

// Render implements interfaces.MapRenderer
func (s *Static) Render(ctx context.Context, box model.BoundingBox, center model.Coordinate, zoom int) (*model.Surface, error) {
	return &model.Surface{
		Backend: BackendStatic,
		URL:     s.url,
		Box:     box,
		Center:  center,
		Zoom:    zoom,
	}, nil
}

// Embed points at the OpenStreetMap export iframe for the box
type Embed struct {
	baseURL string
}

// NewEmbed creates an Embed renderer
func NewEmbed() *Embed {
	return &Embed{baseURL: "https://www.openstreetmap.org/export/embed.html"}
}

// Render implements interfaces.MapRenderer
func (e *Embed) Render(ctx context.Context, box model.BoundingBox, center model.Coordinate, zoom int) (*model.Surface, error) {
	q := url.Values{}
	q.Set("bbox", fmt.Sprintf("%.4f,%.4f,%.4f,%.4f", box.West, box.South, box.East, box.North))
	q.Set("layer", "mapnik")
	q.Set("marker", fmt.Sprintf("%.4f,%.4f", center.Lat, center.Lng))

	return &model.Surface{
		Backend:     BackendEmbed,
		URL:         e.baseURL + "?" + q.Encode(),
		Attribution: osmAttribution,
		Box:         box,
		Center:      center,
		Zoom:        zoom,
	}, nil
}

// Tiles returns a slippy-map tile template plus the tile under the center
type Tiles struct {
	template string
}

// NewTiles creates a Tiles renderer using the public OSM tile server
func NewTiles() *Tiles {
	return &Tiles{template: "https://tile.openstreetmap.org/{z}/{x}/{y}.png"}
}

// Render implements interfaces.MapRenderer
func (t *Tiles) Render(ctx context.Context, box model.BoundingBox, center model.Coordinate, zoom int) (*model.Surface, error) {
	if zoom < 0 || zoom > 19 {
		return nil, goerr.New("zoom out of range", goerr.V("zoom", zoom))
	}
	tile := TileAt(center, zoom)

	return &model.Surface{
		Backend:     BackendTiles,
		URL:         t.template,
		Attribution: osmAttribution,
		Box:         box,
		Center:      center,
		Zoom:        zoom,
		Tile:        &tile,
	}, nil
}

// TileAt returns the Web Mercator tile containing c at zoom z
func TileAt(c model.Coordinate, z int) model.Tile {
	n := math.Exp2(float64(z))
	latRad := c.Lat * math.Pi / 180

	x := int(math.Floor((c.Lng + 180) / 360 * n))
	y := int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	maxIndex := int(n) - 1
	return model.Tile{X: clampInt(x, 0, maxIndex), Y: clampInt(y, 0, maxIndex), Z: z}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
