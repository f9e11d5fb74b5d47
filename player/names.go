package player

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Brave", "Clever", "Wild", "Swift", "Bold", "Mighty", "Mystic", "Noble",
	"Fierce", "Gentle", "Silent", "Rapid", "Calm", "Proud", "Wise", "Happy",
	"Lucky", "Sneaky", "Cunning", "Bright", "Golden", "Silver", "Royal", "Quick",
}

var animals = []string{
	"Octopus", "Tiger", "Phoenix", "Dragon", "Eagle", "Wolf", "Bear", "Fox",
	"Lion", "Hawk", "Shark", "Panther", "Raven", "Falcon", "Lynx", "Owl",
	"Dolphin", "Jaguar", "Cheetah", "Otter", "Badger", "Moose", "Bison", "Elk",
}

// GuestName generates a display name for a connection that has not
// announced one, in the form AdjectiveAnimalNN.
func GuestName() string {
	return fmt.Sprintf("%s%s%d",
		adjectives[rand.Intn(len(adjectives))],
		animals[rand.Intn(len(animals))],
		rand.Intn(100))
}
