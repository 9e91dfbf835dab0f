package placeholder

import "strconv"

// OptionalID is an id filter that distinguishes "not set" from zero.
// The zero value is unset; ID(0) filters by id 0.
type OptionalID struct {
	value int
	set   bool
}

// AnyID is the unset filter.
var AnyID = OptionalID{}

// ID returns a filter set to id.
func ID(id int) OptionalID {
	return OptionalID{value: id, set: true}
}

// Get returns the id and whether it is set.
func (o OptionalID) Get() (int, bool) {
	return o.value, o.set
}

// IsSet reports whether the filter carries a value.
func (o OptionalID) IsSet() bool { return o.set }

func (o OptionalID) String() string {
	if !o.set {
		return "<any>"
	}
	return strconv.Itoa(o.value)
}

// query returns a single-entry query map for key, or nil when unset.
func (o OptionalID) query(key string) map[string]string {
	if !o.set {
		return nil
	}
	return map[string]string{key: strconv.Itoa(o.value)}
}
