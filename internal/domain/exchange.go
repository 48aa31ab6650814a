package domain

import "fmt"

// Role tags the relationship an exchange expresses
type Role string

const (
	RoleProduction   Role = "production"
	RoleTechnosphere Role = "technosphere"
	RoleBiosphere    Role = "biosphere"
)

// ParseRole validates an exchange role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleProduction, RoleTechnosphere, RoleBiosphere:
		return Role(s), nil
	case "emission":
		return RoleBiosphere, nil
	default:
		return "", fmt.Errorf("unknown exchange type %q", s)
	}
}

// Exchange is a directed, amount-carrying edge. Output is the consuming (or
// producing) activity, Input the supplier. Production exchanges point from an
// activity to itself.
type Exchange struct {
	Input  Key
	Output Key
	Amount float64
	Role   Role
}

// IsLoss reports whether the exchange is a technosphere input of the
// activity's own product
func (e Exchange) IsLoss() bool {
	return e.Role == RoleTechnosphere && e.Input == e.Output
}

// Requirements returns the technosphere exchanges to traverse, in stored
// order. Self-consumption losses are excluded.
func Requirements(exchanges []Exchange) []Exchange {
	var out []Exchange
	for _, exc := range exchanges {
		if exc.Role == RoleTechnosphere && !exc.IsLoss() {
			out = append(out, exc)
		}
	}
	return out
}
