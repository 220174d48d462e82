package semantic

// DefaultConcepts returns the reference phrases that describe shareable
// moments: revelations, humor, danger, twists and advice.
func DefaultConcepts() []string {
	return []string{
		"This is amazing and incredible",
		"A secret life hack that changes everything",
		"Shocking truth revealed",
		"Hilarious funny moment",
		"Deep emotional story",
		"Motivational success advice",
		"Unexpected plot twist",
		"Very dangerous situation",
		"Unbelievable fact",
		"How to make money fast",
		"Mind-blowing discovery",
		"Game-changing technology",
		"Must-watch viral content",
		"Insane trick that works",
		"Never seen before",
		"This will change your life",
		"Stop what you're doing",
		"Wait for it...",
		"Best moment ever",
	}
}
