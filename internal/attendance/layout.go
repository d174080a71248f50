package attendance

// Facets are the two independent view toggles of the dashboard.
type Facets struct {
	CheckIn  bool
	CheckOut bool
}

// Layout is the row shape selected by a facet combination.
type Layout int

const (
	// LayoutActions emits one row per punch (both facets off).
	LayoutActions Layout = iota
	// LayoutCheckIns emits one row per check-in.
	LayoutCheckIns
	// LayoutCheckOuts emits one row per check-out.
	LayoutCheckOuts
	// LayoutPaired emits one row per record with both punches (both facets on).
	LayoutPaired
)

// Layout resolves the facet pair to one of the four row layouts.
func (f Facets) Layout() Layout {
	switch {
	case f.CheckIn && f.CheckOut:
		return LayoutPaired
	case f.CheckIn:
		return LayoutCheckIns
	case f.CheckOut:
		return LayoutCheckOuts
	}

	return LayoutActions
}

func (l Layout) String() string {
	switch l {
	case LayoutActions:
		return "actions"
	case LayoutCheckIns:
		return "checkin"
	case LayoutCheckOuts:
		return "checkout"
	case LayoutPaired:
		return "paired"
	}

	return "unknown"
}

// FileSuffix is the layout part of export filenames.
func (l Layout) FileSuffix() string {
	switch l {
	case LayoutCheckIns:
		return "-checkin"
	case LayoutCheckOuts:
		return "-checkout"
	case LayoutPaired:
		return "-paired"
	}

	return ""
}
