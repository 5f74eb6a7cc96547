package models

// Address is the two-line postal address used by users and doctors.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2" json:"line2"`
}

// SlotLedger maps a slot date to the ordered list of booked times on that date.
type SlotLedger map[string][]string

// Contains reports whether time is booked on date.
func (l SlotLedger) Contains(date, time string) bool {
	for _, t := range l[date] {
		if t == time {
			return true
		}
	}
	return false
}

type Doctor struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email,omitempty"`
	PasswordHash string     `bson:"passwordHash" json:"-"`
	Image        string     `bson:"image" json:"image"`
	Speciality   string     `bson:"speciality" json:"speciality"`
	Degree       string     `bson:"degree" json:"degree"`
	Experience   string     `bson:"experience" json:"experience"`
	About        string     `bson:"about" json:"about"`
	Available    bool       `bson:"available" json:"available"`
	Fees         float64    `bson:"fees" json:"fees"`
	Address      Address    `bson:"address" json:"address"`
	Date         int64      `bson:"date" json:"date"`
	SlotsBooked  SlotLedger `bson:"slots_booked" json:"slots_booked"`
}

// Snapshot copies the profile fields embedded into an appointment at booking time.
func (d Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fees:       d.Fees,
		Address:    d.Address,
	}
}

// DoctorUpdate carries the fields a doctor may change on their own profile.
type DoctorUpdate struct {
	Fees      *float64 `json:"fees"`
	Address   *Address `json:"address"`
	Available *bool    `json:"available"`
}
