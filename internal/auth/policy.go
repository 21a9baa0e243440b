package auth

// Decision is the outcome of an ownership check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize allows a mutation only when the requester owns the resource.
// There are no roles and no override.
func Authorize(requesterID, ownerID int64) Decision {
	if requesterID == ownerID {
		return Allow
	}
	return Deny
}
