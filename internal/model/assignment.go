package model

import "time"

// RoleEthicalExpert is the distinguished evaluator role; validation requires
// exactly one assignment holding it per project.
const RoleEthicalExpert = "ethical-expert"

// Assignment links an expert to a project under a role. Assignments are
// managed by the surrounding platform; this engine only reads them for
// evaluator cardinality checks.
type Assignment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProjectID string    `json:"projectId" bson:"projectId"`
	UserID    string    `json:"userId" bson:"userId"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
