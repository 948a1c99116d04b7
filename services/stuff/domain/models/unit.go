package models

// Unit is a measurement unit for Stuff.Quantity. Only members of the fixed
// allowed set are valid; an empty Unit means "no unit".
type Unit string

// The allowed unit set: mass, volume, and count units, the latter in both
// English and Japanese.
const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitMilligram  Unit = "mg"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "mL"
	UnitPieces     Unit = "pieces"
	UnitPacks      Unit = "packs"
	UnitKo         Unit = "個"
	UnitHon        Unit = "本"
	UnitFukuro     Unit = "袋"
	UnitMai        Unit = "枚"
)

var allowedUnits = map[Unit]struct{}{
	UnitKilogram:   {},
	UnitGram:       {},
	UnitMilligram:  {},
	UnitLiter:      {},
	UnitMilliliter: {},
	UnitPieces:     {},
	UnitPacks:      {},
	UnitKo:         {},
	UnitHon:        {},
	UnitFukuro:     {},
	UnitMai:        {},
}

// Allowed reports whether u is a member of the fixed unit set.
func (u Unit) Allowed() bool {
	_, ok := allowedUnits[u]
	return ok
}

// Blank reports whether no unit is set.
func (u Unit) Blank() bool {
	return u == ""
}

// String returns the underlying string value.
func (u Unit) String() string {
	return string(u)
}

// AllowedUnits returns the allowed unit set in a stable order, for API
// documentation and error messages.
func AllowedUnits() []Unit {
	return []Unit{
		UnitKilogram, UnitGram, UnitMilligram,
		UnitLiter, UnitMilliliter,
		UnitPieces, UnitPacks,
		UnitKo, UnitHon, UnitFukuro, UnitMai,
	}
}
