package models

import "time"

type Medicine struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage" json:"dosage"`
	Frequency string `bson:"frequency" json:"frequency"`
}

type Prescription struct {
	ID            string     `bson:"id" json:"id"`
	AppointmentID string     `bson:"appointmentId" json:"appointmentId"`
	DocID         string     `bson:"docId" json:"docId"`
	UserID        string     `bson:"userId" json:"userId"`
	Medicines     []Medicine `bson:"medicines" json:"medicines"`
	Notes         string     `bson:"notes" json:"notes"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}

// PrescribingDoctor is the doctor summary attached to a listed prescription.
type PrescribingDoctor struct {
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
}

// PrescriptionView is a prescription as shown to patients and doctors.
type PrescriptionView struct {
	ID            string            `json:"id"`
	AppointmentID string            `json:"appointmentId"`
	Doctor        PrescribingDoctor `json:"doctor"`
	Medicines     []Medicine        `json:"medicines"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"createdAt"`
}
