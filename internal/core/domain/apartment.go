package domain

// ApartmentRole is the role of a user within an apartment.
// Only MEMBER exists today; the type leaves room for finer roles later.
type ApartmentRole string

const (
	RoleMember ApartmentRole = "MEMBER"
)
