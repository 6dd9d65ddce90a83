package tableskema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// geojsonTypes are the object types the GeoJSON spec recognizes.
var geojsonTypes = map[string]bool{
	"Point": true, "MultiPoint": true, "LineString": true,
	"MultiLineString": true, "Polygon": true, "MultiPolygon": true,
	"GeometryCollection": true, "Feature": true, "FeatureCollection": true,
}

// geopointCaster handles the geopoint type in its three wire formats:
// "lon,lat" (default), [lon, lat] (array) and {"lon":..,"lat":..} (object).
// Native value: GeoPoint.
type geopointCaster struct {
	format string
}

func (geopointCaster) typeName() string { return TypeGeopoint }

func (c geopointCaster) parse(raw any) (any, error) {
	if p, ok := raw.(GeoPoint); ok {
		return checkGeoPoint(p)
	}
	switch c.format {
	case FormatDefault:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected \"lon,lat\" string, got %T", raw)
		}
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid geopoint %q", s)
		}
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if lonErr != nil || latErr != nil {
			return nil, fmt.Errorf("invalid geopoint %q", s)
		}
		return checkGeoPoint(GeoPoint{Lon: lon, Lat: lat})
	case "array":
		arr, err := geoPair(raw)
		if err != nil {
			return nil, err
		}
		return checkGeoPoint(arr)
	case "object":
		obj, err := geoObject(raw)
		if err != nil {
			return nil, err
		}
		return checkGeoPoint(obj)
	}
	return nil, fmt.Errorf("expected geopoint, got %T", raw)
}

func geoPair(raw any) (GeoPoint, error) {
	v := raw
	if s, ok := raw.(string); ok {
		parsed, err := decodeJSONValue(s)
		if err != nil {
			return GeoPoint{}, fmt.Errorf("invalid geopoint array %q", s)
		}
		v = parsed
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return GeoPoint{}, errors.New("geopoint array needs exactly [lon, lat]")
	}
	lon, lonOK := toFloat(arr[0])
	lat, latOK := toFloat(arr[1])
	if !lonOK || !latOK {
		return GeoPoint{}, errors.New("geopoint array members must be numbers")
	}
	return GeoPoint{Lon: lon, Lat: lat}, nil
}

func geoObject(raw any) (GeoPoint, error) {
	v := raw
	if s, ok := raw.(string); ok {
		parsed, err := decodeJSONValue(s)
		if err != nil {
			return GeoPoint{}, fmt.Errorf("invalid geopoint object %q", s)
		}
		v = parsed
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return GeoPoint{}, errors.New("geopoint object must be {\"lon\":..,\"lat\":..}")
	}
	lon, lonOK := toFloat(obj["lon"])
	lat, latOK := toFloat(obj["lat"])
	if !lonOK || !latOK {
		return GeoPoint{}, errors.New("geopoint object needs numeric lon and lat")
	}
	return GeoPoint{Lon: lon, Lat: lat}, nil
}

func checkGeoPoint(p GeoPoint) (any, error) {
	if p.Lon < -180 || p.Lon > 180 || p.Lat < -90 || p.Lat > 90 {
		return nil, fmt.Errorf("geopoint %s out of range", p)
	}
	return p, nil
}

// geojsonCaster handles the geojson type: an object (or JSON-object string)
// whose "type" member is a recognized GeoJSON type. The topojson format
// accepts any object. Native value: map[string]any.
type geojsonCaster struct {
	format string
}

func (geojsonCaster) typeName() string { return TypeGeojson }

func (c geojsonCaster) parse(raw any) (any, error) {
	v := raw
	if s, ok := raw.(string); ok {
		parsed, err := decodeJSONValue(s)
		if err != nil {
			return nil, fmt.Errorf("invalid geojson: %w", err)
		}
		v = parsed
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected geojson object, got %T", raw)
	}
	if c.format == FormatDefault {
		t, _ := obj["type"].(string)
		if !geojsonTypes[t] {
			return nil, fmt.Errorf("unknown geojson type %q", t)
		}
	}
	return obj, nil
}
