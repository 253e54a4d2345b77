package domain

// Entry is one normalized source record: an address bound to one rule.
type Entry struct {
	Address      Address
	Rule         Rule
	Neighborhood NeighborhoodKey
	Fraction     string
	Residential  bool
	District     string
}

// AddressGroup binds a rule set within one neighborhood to the addresses it
// governs.
type AddressGroup struct {
	Neighborhood NeighborhoodKey
	Rules        RuleSet
	Addresses    []Address
}
