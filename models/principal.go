package models

// Principal is the authenticated actor performing a request. It is resolved
// once by the auth middleware and passed explicitly into operations that
// need it, so the scheduling core can be exercised without any HTTP or
// session machinery. DoctorID / PatientID are zero when the user has no
// linked profile of that kind.
type Principal struct {
	UserID    uint
	RoleID    uint
	DoctorID  uint
	PatientID uint
}

func (p Principal) IsAdmin() bool     { return p.RoleID == RoleAdmin }
func (p Principal) IsDoctor() bool    { return p.RoleID == RoleDoctor }
func (p Principal) IsReception() bool { return p.RoleID == RoleReception }
