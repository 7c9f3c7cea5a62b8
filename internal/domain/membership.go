package domain

import "time"

// MembershipKind names one of the role-membership tables. A user holds at
// most one membership per kind (user_id is unique within each table).
type MembershipKind string

const (
	KindAdministrator MembershipKind = "administrator"
	KindProfessor     MembershipKind = "professor"
	KindStudent       MembershipKind = "student"
)

// Membership links a user to a role. The row carries no payload of its own;
// its existence is the fact.
type Membership struct {
	MembershipID string    `json:"id" dynamodbav:"membership_id"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
	User         *User     `json:"user,omitempty" dynamodbav:"-"`
}

type CreateMembershipRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
