// Package punishment holds the fixed catalog of flat punishments and the
// random picker that selects one when a complaint crosses the vote threshold.
package punishment

import "math/rand"

// Catalog is the full set of punishments a complaint can be sentenced to.
// A punishment is assigned at most once per complaint and never changes
// afterwards, so the texts here are effectively append-only.
var Catalog = []string{
	"Didn’t clean the dishes? You’re making chai for a week! ☕",
	"Blasted loud music? You owe everyone samosas! 🍛",
	"Forgot to take out the trash? You’re on garbage duty for 3 days! 🚮",
	"Left dirty laundry? You have to do everyone's laundry this weekend! 👕",
	"Used up all the WiFi? You must buy a new router! 📶",
}

// Picker selects punishments from the catalog. The randomness source is
// injected so tests can pin the selection.
type Picker struct {
	rng *rand.Rand
}

// NewPicker creates a Picker backed by the given source.
func NewPicker(src rand.Source) *Picker {
	return &Picker{rng: rand.New(src)}
}

// Pick returns one punishment text, uniformly at random.
func (p *Picker) Pick() string {
	return Catalog[p.rng.Intn(len(Catalog))]
}
