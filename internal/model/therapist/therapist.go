package therapist

// ServedCities are the cities the directory currently covers.
var ServedCities = []string{"Mumbai", "Navi Mumbai"}

// Therapist is a directory listing.
type Therapist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Verified    bool     `json:"verified"`
}

// HasLocation reports whether both coordinates are known.
func (t Therapist) HasLocation() bool {
	return t.Latitude != nil && t.Longitude != nil
}

func coord(v float64) *float64 { return &v }

// Seed provides the local directory used when no database is configured.
func Seed() []Therapist {
	return []Therapist{
		{
			ID:          "th-anjali-mehta",
			Name:        "Dr. Anjali Mehta",
			Description: "Clinical psychologist focusing on anxiety, panic and stress management using CBT.",
			Address:     "204 Sea View Chambers, Linking Road, Bandra West",
			City:        "Mumbai",
			Latitude:    coord(19.0606),
			Longitude:   coord(72.8347),
			Email:       "anjali.mehta@example.com",
			Phone:       "+91 22 5550 0101",
			Verified:    true,
		},
		{
			ID:          "th-rohan-patel",
			Name:        "Dr. Rohan Patel",
			Description: "Psychiatrist treating depression and mood disorders with a mix of therapy and medication review.",
			Address:     "3rd Floor, Lotus Plaza, Andheri East",
			City:        "Mumbai",
			Latitude:    coord(19.1136),
			Longitude:   coord(72.8697),
			Email:       "rohan.patel@example.com",
			Verified:    true,
		},
		{
			ID:          "th-sara-dsouza",
			Name:        "Sara D'Souza",
			Description: "Counselling psychologist for young adults, relationships and grief.",
			Address:     "Plot 12, Sector 17, Vashi",
			City:        "Navi Mumbai",
			Latitude:    coord(19.0771),
			Longitude:   coord(72.9986),
			Phone:       "+91 22 5550 0303",
			Verified:    true,
		},
		{
			ID:          "th-vikram-rao",
			Name:        "Vikram Rao",
			Description: "Mindfulness-based therapy and anger management groups.",
			Address:     "Shop 5, Palm Beach Residency, Nerul",
			City:        "Navi Mumbai",
			Verified:    true,
		},
		{
			ID:          "th-neha-kulkarni",
			Name:        "Dr. Neha Kulkarni",
			Description: "Trauma-informed therapist.",
			Address:     "FC Road, Shivajinagar",
			City:        "Pune",
			Latitude:    coord(18.5236),
			Longitude:   coord(73.8478),
			Verified:    true,
		},
		{
			ID:          "th-amit-shah",
			Name:        "Amit Shah",
			Description: "Life coach, profile pending verification.",
			Address:     "Hill Road, Bandra West",
			City:        "Mumbai",
			Verified:    false,
		},
	}
}
