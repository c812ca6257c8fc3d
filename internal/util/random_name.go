package util

import (
	"fmt"

	"pokerhall-server/internal/rng"
)

var random rng.Generator = rng.Crypto{}

var adjectives = []string{
	"Lucky", "Golden", "Velvet", "Smoky", "Midnight", "Electric", "Rusty", "Silent", "Crimson", "Neon",
	"Dusty", "Royal", "Wild", "Frozen", "Blazing", "Crooked", "Silver", "Emerald", "Shady", "Roaring",
	"Marble", "Gilded", "Howling", "Drifting", "Lonesome", "Iron", "Copper", "Thundering",
}

var animals = []string{
	"Mustang", "Coyote", "Raven", "Stallion", "Jackal", "Cobra", "Falcon", "Panther", "Badger", "Viper",
	"Bison", "Lynx", "Moose", "Gator", "Hound", "Raccoon", "Walrus", "Pelican", "Ocelot", "Tortoise",
	"Marlin", "Condor", "Wolverine", "Stingray", "Mule",
}

// GetRandomName returns a random table name by combining an adjective with an animal
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
