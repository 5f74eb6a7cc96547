package models

// PatientSnapshot is the patient profile as it was when the appointment was booked.
// It is never refreshed from the live user record.
type PatientSnapshot struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Image  string `bson:"image" json:"image"`
	Phone  string `bson:"phone" json:"phone"`
	Gender string `bson:"gender" json:"gender"`
	DOB    string `bson:"dob" json:"dob"`
	Age    string `bson:"age" json:"age"`
	Blood  string `bson:"blood" json:"blood"`
}

// DoctorSnapshot is the doctor profile as it was when the appointment was booked.
type DoctorSnapshot struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Email      string  `bson:"email" json:"email"`
	Image      string  `bson:"image" json:"image"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Degree     string  `bson:"degree" json:"degree"`
	Experience string  `bson:"experience" json:"experience"`
	About      string  `bson:"about" json:"about"`
	Fees       float64 `bson:"fees" json:"fees"`
	Address    Address `bson:"address" json:"address"`
}

type Appointment struct {
	ID          string          `bson:"id" json:"id"`
	UserID      string          `bson:"userId" json:"userId"`
	DocID       string          `bson:"docId" json:"docId"`
	SlotDate    string          `bson:"slotDate" json:"slotDate"`
	SlotTime    string          `bson:"slotTime" json:"slotTime"`
	UserData    PatientSnapshot `bson:"userData" json:"userData"`
	DocData     DoctorSnapshot  `bson:"docData" json:"docData"`
	Amount      float64         `bson:"amount" json:"amount"`
	Date        int64           `bson:"date" json:"date"` // creation time, unix millis
	Cancelled   bool            `bson:"cancelled" json:"cancelled"`
	Payment     bool            `bson:"payment" json:"payment"`
	IsCompleted bool            `bson:"isCompleted" json:"isCompleted"`
}

// DoctorDashboard summarizes a doctor's appointments.
type DoctorDashboard struct {
	Earnings           float64       `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

// AdminDashboard summarizes the whole clinic.
type AdminDashboard struct {
	Doctors            int           `json:"doctors"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}
