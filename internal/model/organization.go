package model

import "github.com/google/uuid"

// MemberRole is the role a member holds inside a division.
type MemberRole string

const (
	MemberLead      MemberRole = "LEAD"
	MemberSecretary MemberRole = "SECRETARY"
	MemberStaff     MemberRole = "STAFF"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberLead, MemberSecretary, MemberStaff:
		return true
	}
	return false
}

type Department struct {
	Model
	Department string     `json:"department" gorm:"column:department;size:255;not null"`
	Slug       string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Divisions  []Division `json:"divisions,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}

type Division struct {
	Model
	Division     string      `json:"division" gorm:"column:division;size:255;not null"`
	Slug         string      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	DepartmentID uuid.UUID   `json:"department_id" gorm:"type:char(36);not null;index"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
	Members      []Member    `json:"members,omitempty" gorm:"foreignKey:DivisionID;constraint:OnDelete:SET NULL"`
}

type Member struct {
	Model
	Name       string     `json:"name" gorm:"size:255;not null"`
	Position   string     `json:"position" gorm:"size:255;not null"`
	Role       MemberRole `json:"role" gorm:"size:20;not null;default:STAFF"`
	Photo      *string    `json:"photo"`
	DivisionID *uuid.UUID `json:"division_id" gorm:"type:char(36);index"`
	Division   *Division  `json:"division,omitempty" gorm:"foreignKey:DivisionID;constraint:OnDelete:SET NULL"`
}
