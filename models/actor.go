package models

// Role is the token scope of an authenticated caller.
type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

// Actor identifies who is performing a workflow operation.
type Actor struct {
	Role Role
	ID   string
}

func PatientActor(id string) Actor { return Actor{Role: RoleUser, ID: id} }
func DoctorActor(id string) Actor  { return Actor{Role: RoleDoctor, ID: id} }
func AdminActor(id string) Actor   { return Actor{Role: RoleAdmin, ID: id} }
