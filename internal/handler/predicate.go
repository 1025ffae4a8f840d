package handler

// All matches every descriptor.
func All(Descriptor) bool { return true }

// OrderIs matches descriptors with the given order.
func OrderIs(order int) Predicate {
	return func(d Descriptor) bool { return d.Order == order }
}

// OrderAtLeast matches descriptors whose order is >= min.
func OrderAtLeast(min int) Predicate {
	return func(d Descriptor) bool { return d.Order >= min }
}

// IDIs matches descriptors with the given id.
func IDIs(id string) Predicate {
	return func(d Descriptor) bool { return d.ID == id }
}

// MethodIs matches descriptors bound to the named method.
func MethodIs(name string) Predicate {
	return func(d Descriptor) bool { return d.Method.Name == name }
}

// And matches when every predicate matches.
func And(ps ...Predicate) Predicate {
	return func(d Descriptor) bool {
		for _, p := range ps {
			if !p(d) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(d Descriptor) bool {
		for _, p := range ps {
			if p(d) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(d Descriptor) bool { return !p(d) }
}
