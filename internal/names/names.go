// Package names generates memorable display names such as "brave_teal_otter".
package names

import (
	"math/rand/v2"
	"strings"
)

const separator = "_"

var adjectives = []string{
	"able", "agile", "amber", "ample", "bold", "brave", "bright", "brisk", "calm", "candid",
	"cheerful", "clever", "cosmic", "cozy", "curious", "daring", "eager", "earnest", "fair", "fancy",
	"fearless", "gentle", "glad", "graceful", "happy", "honest", "humble", "jolly", "keen", "kind",
	"lively", "loyal", "lucky", "merry", "mighty", "modest", "nimble", "noble", "patient", "plucky",
	"polite", "proud", "quick", "quiet", "rapid", "ready", "silly", "smart", "snappy", "steady",
	"sunny", "swift", "tidy", "tough", "upbeat", "vivid", "warm", "wise", "witty", "zesty",
}

var colors = []string{
	"amber", "aqua", "azure", "beige", "black", "blue", "bronze", "brown", "coral", "crimson",
	"cyan", "emerald", "gold", "gray", "green", "indigo", "ivory", "jade", "lavender", "lime",
	"magenta", "maroon", "mint", "navy", "olive", "orange", "peach", "pink", "plum", "purple",
	"red", "rose", "ruby", "salmon", "silver", "tan", "teal", "turquoise", "violet", "white",
	"yellow",
}

var animals = []string{
	"albatross", "alpaca", "badger", "bat", "bear", "beaver", "bison", "camel", "cat", "cheetah",
	"crane", "crow", "deer", "dingo", "dolphin", "duck", "eagle", "eel", "falcon", "ferret",
	"finch", "fox", "gecko", "giraffe", "goat", "goose", "hare", "hawk", "hedgehog", "heron",
	"ibis", "jaguar", "koala", "lemur", "lion", "llama", "lynx", "marmot", "meerkat", "mole",
	"moose", "newt", "octopus", "otter", "owl", "panda", "parrot", "pelican", "penguin", "puffin",
	"quail", "rabbit", "raven", "seal", "shark", "sloth", "swan", "tiger", "toad", "walrus",
	"whale", "wolf", "wombat", "yak", "zebra",
}

// Generate returns a random adjective, color and animal joined by underscores.
func Generate() string {
	return strings.Join([]string{pick(adjectives), pick(colors), pick(animals)}, separator)
}

func pick(words []string) string {
	return words[rand.IntN(len(words))]
}
