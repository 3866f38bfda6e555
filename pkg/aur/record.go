package aur

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Package is one AUR repository entry.
//
// A Package exists only if every required field was present in the source
// JSON object with the expected type; the mapper never produces partial
// records. Packages are immutable value records with no identity beyond ID.
//
// License and Maintainer are nil when the service sent JSON null.
type Package struct {
	BaseName    string    // source package grouping name (PackageBase)
	BaseID      uint64    // identifier of the grouping (PackageBaseID)
	Name        string    // package name
	Version     string    // version string, repo-defined format
	Homepage    string    // upstream URL, may be empty
	Description string    // package description
	OutOfDate   bool      // true iff the OutOfDate field was non-zero
	Created     time.Time // first submission time, UTC, second precision
	Modified    time.Time // last modification time, UTC, second precision
	License     *string   // nil when the service sent null
	Maintainer  *string   // nil when the service sent null (orphaned package)
	Votes       uint64    // vote count (NumVotes)
	ID          uint64    // unique package identifier
	CategoryID  uint64    // category identifier
	Download    string    // relative download path (URLPath)
}

// packageFromValue maps one decoded JSON object onto a Package. Field names
// are the service's, verbatim and case-sensitive. Any missing key, wrong
// JSON type, or out-of-range timestamp fails the whole mapping. Lookup is
// non-destructive and order-independent; unrecognized keys are ignored.
func packageFromValue(v any) (Package, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Package{}, invalidResponse("package record is not a JSON object")
	}

	var p Package
	var err error
	if p.BaseName, err = stringField(obj, "PackageBase"); err != nil {
		return Package{}, err
	}
	if p.BaseID, err = uintField(obj, "PackageBaseID"); err != nil {
		return Package{}, err
	}
	if p.Name, err = stringField(obj, "Name"); err != nil {
		return Package{}, err
	}
	if p.CategoryID, err = uintField(obj, "CategoryID"); err != nil {
		return Package{}, err
	}
	if p.Description, err = stringField(obj, "Description"); err != nil {
		return Package{}, err
	}
	if p.Created, err = timeField(obj, "FirstSubmitted"); err != nil {
		return Package{}, err
	}
	if p.Modified, err = timeField(obj, "LastModified"); err != nil {
		return Package{}, err
	}
	if p.ID, err = uintField(obj, "ID"); err != nil {
		return Package{}, err
	}
	if p.License, err = optStringField(obj, "License"); err != nil {
		return Package{}, err
	}
	if p.Maintainer, err = optStringField(obj, "Maintainer"); err != nil {
		return Package{}, err
	}
	if p.Votes, err = uintField(obj, "NumVotes"); err != nil {
		return Package{}, err
	}
	flag, err := uintField(obj, "OutOfDate")
	if err != nil {
		return Package{}, err
	}
	p.OutOfDate = flag != 0
	if p.Homepage, err = stringField(obj, "URL"); err != nil {
		return Package{}, err
	}
	if p.Download, err = stringField(obj, "URLPath"); err != nil {
		return Package{}, err
	}
	if p.Version, err = stringField(obj, "Version"); err != nil {
		return Package{}, err
	}
	return p, nil
}

// packageList maps a results array element-wise, preserving server order.
func packageList(results any) ([]Package, error) {
	arr, ok := results.([]any)
	if !ok {
		return nil, invalidResponse("results is not an array")
	}
	pkgs := make([]Package, 0, len(arr))
	for _, e := range arr {
		p, err := packageFromValue(e)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", invalidResponse("missing field %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidResponse("field %s is not a string", key)
	}
	return s, nil
}

// uintField requires key to hold a non-negative integer that fits uint64.
// Floats, negatives, and overflow all reject the record.
func uintField(obj map[string]any, key string) (uint64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, invalidResponse("missing field %s", key)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, invalidResponse("field %s is not a number", key)
	}
	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, invalidResponse("field %s is not an unsigned integer", key)
	}
	return u, nil
}

// timeField converts a unix-seconds integer into a UTC time. Values that do
// not fit a signed 64-bit timestamp reject the record.
func timeField(obj map[string]any, key string) (time.Time, error) {
	u, err := uintField(obj, key)
	if err != nil {
		return time.Time{}, err
	}
	if u > math.MaxInt64 {
		return time.Time{}, invalidResponse("field %s timestamp out of range", key)
	}
	return time.Unix(int64(u), 0).UTC(), nil
}

// optStringField accepts a string or JSON null; null maps to nil. The key
// itself must still be present.
func optStringField(obj map[string]any, key string) (*string, error) {
	v, ok := obj[key]
	if !ok {
		return nil, invalidResponse("missing field %s", key)
	}
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalidResponse("field %s is not a string or null", key)
	}
	return &s, nil
}
