package geometry

// ResolveField finds the volume primitive whose name attribute equals field.
// When several volumes share the name, the last one in native order wins;
// matches reports how many were seen. A nil grid with a nil error means no
// volume carried the name.
func ResolveField(ds Dataset, field string) (grid ScalarGrid, matches int, err error) {
	prims, err := ds.Primitives()
	if err != nil {
		return nil, 0, err
	}
	for p := range prims {
		if p.Kind != KindVolume || p.Name != field {
			continue
		}
		grid = p.Grid
		matches++
	}
	return grid, matches, nil
}
