package entities

import (
	"time"

	"facepass.io/application/utils"
)

type OperatorRole string

const (
	RoleUser     OperatorRole = "USER"
	RoleOperator OperatorRole = "OPERATOR"
	RoleManager  OperatorRole = "MANAGER"
	RoleAdmin    OperatorRole = "ADMIN"
)

// roleRanks gives the ordinal ordering of roles. A higher rank implies every
// lower-rank permission.
var roleRanks = map[OperatorRole]int{
	RoleUser:     0,
	RoleOperator: 1,
	RoleManager:  2,
	RoleAdmin:    3,
}

func (r OperatorRole) Rank() int {
	return roleRanks[r]
}

func (r OperatorRole) Known() bool {
	_, ok := roleRanks[r]
	return ok
}

// HasPermission reports whether an operator holding the actual role may use a
// capability requiring the required role.
func HasPermission(actual OperatorRole, required OperatorRole) bool {
	if !actual.Known() || !required.Known() {
		return false
	}
	return actual.Rank() >= required.Rank()
}

// Operator is a staff account for gate terminals and event administration.
type Operator struct {
	Name        string       `bson:"name" json:"name"`
	Email       string       `bson:"email" json:"email" validate:"email,required"`
	Password    string       `bson:"password" json:"-"`
	Role        OperatorRole `bson:"role" json:"role"`
	Deactivated bool         `bson:"deactivated" json:"deactivated"`
	LastLoginAt *time.Time   `bson:"lastLoginAt" json:"lastLoginAt"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

func (model Operator) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
