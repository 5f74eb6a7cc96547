package models

import "time"

// User is a patient account.
type User struct {
	ID                   string    `bson:"id" json:"id"`
	Name                 string    `bson:"name" json:"name"`
	Email                string    `bson:"email" json:"email"`
	PasswordHash         string    `bson:"passwordHash" json:"-"`
	Image                string    `bson:"image" json:"image"`
	Phone                string    `bson:"phone" json:"phone"`
	Address              Address   `bson:"address" json:"address"`
	Gender               string    `bson:"gender" json:"gender"`
	DOB                  string    `bson:"dob" json:"dob"`
	Age                  string    `bson:"age" json:"age"`
	EmergencyContact     string    `bson:"econtact" json:"econtact"`
	PreMedical           string    `bson:"premedical" json:"premedical"`
	Allergy              string    `bson:"allergy" json:"allergy"`
	Blood                string    `bson:"blood" json:"blood"`
	ResetPasswordToken   string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Snapshot copies the profile fields embedded into an appointment at booking time.
func (u User) Snapshot() PatientSnapshot {
	return PatientSnapshot{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Image:  u.Image,
		Phone:  u.Phone,
		Gender: u.Gender,
		DOB:    u.DOB,
		Age:    u.Age,
		Blood:  u.Blood,
	}
}

// ProfileUpdate is the patient profile form. Every field except Address is required.
type ProfileUpdate struct {
	Name             string
	Phone            string
	Address          Address
	DOB              string
	Gender           string
	Age              string
	EmergencyContact string
	PreMedical       string
	Allergy          string
	Blood            string
}
