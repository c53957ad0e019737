package service

import (
	"fmt"
	"math/rand"

	"corporate/internal/domain"
)

// Driver identity is synthesized, not dispatched: the corporate API has no
// real driver matching, so each trip gets a plausible contact drawn from
// fixed name pools with a Venezuelan phone number.

const driverPhoneCountryCode = "+58"

var driverFirstNames = []string{
	"Carlos", "Jose", "Luis", "Miguel", "Pedro",
	"Maria", "Ana", "Carmen", "Isabel", "Rosa",
}

var driverLastNames = []string{
	"Gonzalez", "Rodriguez", "Perez", "Hernandez", "Garcia",
	"Martinez", "Lopez", "Sanchez", "Ramirez", "Torres",
}

// SynthesizeDriver returns a randomly generated driver Contact.
func SynthesizeDriver() domain.Contact {
	return domain.Contact{
		FirstName:        driverFirstNames[rand.Intn(len(driverFirstNames))],
		LastName:         driverLastNames[rand.Intn(len(driverLastNames))],
		PhoneCountryCode: driverPhoneCountryCode,
		PhoneNumber:      fmt.Sprintf("%03d%04d", rand.Intn(1000), rand.Intn(10000)),
	}
}
