package geo

import (
	"sort"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// FallbackRegion is returned for unknown names: the departmental capital at a
// zoom that shows the whole department.
var FallbackRegion = model.Region{
	Name:       "Popayán",
	Coordinate: model.Coordinate{Lat: 2.4448, Lng: -76.6147},
	Zoom:       8,
}

// caucaMunicipalities lists approximate centers of the Cauca municipalities
var caucaMunicipalities = []model.Region{
	{Name: "Popayán", Coordinate: model.Coordinate{Lat: 2.4448, Lng: -76.6147}, Zoom: 12},
	{Name: "Patía", Coordinate: model.Coordinate{Lat: 2.0667, Lng: -77.0333}, Zoom: 11},
	{Name: "Guapi", Coordinate: model.Coordinate{Lat: 2.5667, Lng: -77.8833}, Zoom: 11},
	{Name: "Timbiquí", Coordinate: model.Coordinate{Lat: 2.7667, Lng: -77.6833}, Zoom: 11},
	{Name: "López de Micay", Coordinate: model.Coordinate{Lat: 2.9333, Lng: -77.2667}, Zoom: 11},
	{Name: "Santander de Quilichao", Coordinate: model.Coordinate{Lat: 3.0167, Lng: -76.4833}, Zoom: 12},
	{Name: "Puerto Tejada", Coordinate: model.Coordinate{Lat: 3.2333, Lng: -76.4167}, Zoom: 12},
	{Name: "Caldono", Coordinate: model.Coordinate{Lat: 2.8333, Lng: -76.5667}, Zoom: 11},
	{Name: "Toribío", Coordinate: model.Coordinate{Lat: 3.1167, Lng: -76.0667}, Zoom: 11},
	{Name: "Jambaló", Coordinate: model.Coordinate{Lat: 2.7667, Lng: -76.2833}, Zoom: 11},
	{Name: "Silvia", Coordinate: model.Coordinate{Lat: 2.6167, Lng: -76.3833}, Zoom: 11},
	{Name: "Páez (Belalcázar)", Coordinate: model.Coordinate{Lat: 2.5833, Lng: -76.0667}, Zoom: 11},
	{Name: "Inzá", Coordinate: model.Coordinate{Lat: 2.5500, Lng: -76.0500}, Zoom: 11},
	{Name: "Tierradentro", Coordinate: model.Coordinate{Lat: 2.6000, Lng: -76.0000}, Zoom: 10},
	{Name: "Bolívar", Coordinate: model.Coordinate{Lat: 1.8667, Lng: -77.1833}, Zoom: 11},
	{Name: "Mercaderes", Coordinate: model.Coordinate{Lat: 1.8167, Lng: -77.2167}, Zoom: 11},
	{Name: "Florencia", Coordinate: model.Coordinate{Lat: 1.6167, Lng: -76.6167}, Zoom: 11},
	{Name: "Sotará", Coordinate: model.Coordinate{Lat: 2.1167, Lng: -76.6333}, Zoom: 11},
	{Name: "Rosas", Coordinate: model.Coordinate{Lat: 1.6500, Lng: -77.1500}, Zoom: 11},
	{Name: "La Sierra", Coordinate: model.Coordinate{Lat: 1.5833, Lng: -76.8833}, Zoom: 11},
	{Name: "El Tambo", Coordinate: model.Coordinate{Lat: 2.4500, Lng: -76.8167}, Zoom: 11},
	{Name: "Timbío", Coordinate: model.Coordinate{Lat: 2.3444, Lng: -76.6847}, Zoom: 12},
	{Name: "Morales", Coordinate: model.Coordinate{Lat: 3.1167, Lng: -76.6167}, Zoom: 11},
	{Name: "Piendamó", Coordinate: model.Coordinate{Lat: 2.6333, Lng: -76.9833}, Zoom: 11},
	{Name: "Cajibío", Coordinate: model.Coordinate{Lat: 2.5667, Lng: -76.8333}, Zoom: 11},
	{Name: "Argelia", Coordinate: model.Coordinate{Lat: 2.3000, Lng: -77.0333}, Zoom: 11},
	{Name: "Balboa", Coordinate: model.Coordinate{Lat: 1.8000, Lng: -77.4000}, Zoom: 11},
	{Name: "Almaguer", Coordinate: model.Coordinate{Lat: 1.9167, Lng: -76.8667}, Zoom: 11},
	{Name: "San Sebastián", Coordinate: model.Coordinate{Lat: 1.7167, Lng: -76.9333}, Zoom: 11},
	{Name: "Santa Rosa", Coordinate: model.Coordinate{Lat: 1.5667, Lng: -76.9167}, Zoom: 11},
	{Name: "Sucre", Coordinate: model.Coordinate{Lat: 1.2833, Lng: -77.1167}, Zoom: 11},
}

// RegionTable is a read-only name -> region lookup. It is built once at
// startup and never mutated afterwards, so it is safe for concurrent use.
type RegionTable struct {
	regions  map[string]model.Region
	fallback model.Region
}

// NewRegionTable creates the Cauca table with extra regions layered on top.
// An extra region replaces a built-in one with the same name.
func NewRegionTable(extra ...model.Region) *RegionTable {
	t := &RegionTable{
		regions:  make(map[string]model.Region, len(caucaMunicipalities)+len(extra)),
		fallback: FallbackRegion,
	}
	for _, r := range caucaMunicipalities {
		t.regions[r.Name] = r
	}
	for _, r := range extra {
		t.regions[r.Name] = r
	}
	return t
}

// Lookup resolves name with an exact, case-sensitive match. On a miss it
// returns the fallback region and false; it never fails.
func (t *RegionTable) Lookup(name string) (model.Region, bool) {
	if r, ok := t.regions[name]; ok {
		return r, true
	}
	return t.fallback, false
}

// Get is the strict variant of Lookup for input validation
func (t *RegionTable) Get(name string) (model.Region, error) {
	r, ok := t.regions[name]
	if !ok {
		return model.Region{}, goerr.New("unknown region", goerr.V("name", name))
	}
	return r, nil
}

// Names returns the region names sorted
func (t *RegionTable) Names() []string {
	names := make([]string, 0, len(t.regions))
	for name := range t.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every region sorted by name
func (t *RegionTable) All() []model.Region {
	names := t.Names()
	regions := make([]model.Region, 0, len(names))
	for _, name := range names {
		regions = append(regions, t.regions[name])
	}
	return regions
}

// Len returns the number of regions
func (t *RegionTable) Len() int {
	return len(t.regions)
}
