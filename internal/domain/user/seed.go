package user

import "time"

// PlaceholderPassword is the credential written for seeded accounts.
const PlaceholderPassword = "demo123"

// DefaultRoster returns the accounts written on first run, all stamped with now.
func DefaultRoster(now time.Time) Roster {
	seed := []struct{ id, name, role, email string }{
		{"hiram.gonzalez", "Hiram Gonzalez", "DX Engineer", "hiram@dx.com"},
		{"sandra.santos", "Sandra Santos", "DX Lead", "sandra@dx.com"},
		{"miguel.coronado", "Miguel Coronado", "DX Developer", "miguel@dx.com"},
		{"brayan.rocha", "Brayan Rocha", "DX Analyst", "brayan@dx.com"},
	}
	users := make([]User, 0, len(seed))
	for _, s := range seed {
		users = append(users, User{
			ID:        s.id,
			Username:  s.id,
			Password:  PlaceholderPassword,
			Name:      s.name,
			Role:      s.role,
			Email:     s.email,
			CreatedAt: now,
		})
	}
	return Roster{Users: users}
}
