package model

import "time"

// Member roles.
const (
	RoleAlumni         = "alumni"
	RoleAdmin          = "admin"
	RoleRepresentative = "representative"
)

// Member lifecycle statuses. New signups always start as pending; the only
// exposed transitions are pending->approved and pending->rejected, both via
// the admin endpoints, which overwrite unconditionally.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User represents an alumni/admin/representative account belonging to one
// university. The university is a reference, not ownership: its lifetime is
// independent of the user's.
type User struct {
	ID             int64  `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:128;not null" json:"name"`
	Email          string `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash   string `gorm:"size:128;not null" json:"-"`
	Phone          string `gorm:"size:32" json:"phone"`
	UniversityID   int64  `gorm:"index;not null" json:"universityId"`
	Role           string `gorm:"size:32;not null;default:alumni" json:"role"`
	Status         string `gorm:"size:32;not null;default:pending" json:"status"`
	RollNumber     string `gorm:"size:64" json:"rollNumber"`
	ParentContact  string `gorm:"size:64" json:"parentContact"`
	GraduationYear int    `json:"graduationYear"`
	Degree         string `gorm:"size:128" json:"degree"`
	CurrentCity    string `gorm:"size:128" json:"currentCity"`
	Company        string `gorm:"size:128" json:"company"`
	Designation    string `gorm:"size:128" json:"designation"`
	Bio            string `gorm:"type:text" json:"bio"`
	PhotoURL       string `gorm:"size:512" json:"photoUrl"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	University University `json:"university"`
}

// IsUniversityStaff reports whether the user may act for their university on
// administrative endpoints.
func (u *User) IsUniversityStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleRepresentative
}
