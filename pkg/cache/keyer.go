package cache

// keyVersion changes whenever the translation output for a given input may
// change, invalidating earlier entries.
const keyVersion = 1

// Keyer derives cache keys.
type Keyer interface {
	// TranslationKey returns the key for translating input from source.
	TranslationKey(source, input string, canonical bool) string
}

// DefaultKeyer hashes the translation parameters.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TranslationKey implements Keyer.
func (DefaultKeyer) TranslationKey(source, input string, canonical bool) string {
	return hashKey("translation", keyVersion, source, input, canonical)
}
