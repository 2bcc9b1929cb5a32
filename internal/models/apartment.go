package models

// ApartmentMember mirrors a row of the apartment_members table.
type ApartmentMember struct {
	ApartmentID string `json:"apartmentID"`
	UserID      string `json:"userID"`
	Role        string `json:"role"`
	AuditFields
}
