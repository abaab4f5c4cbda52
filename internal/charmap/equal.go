package charmap

// Equal reports structural equality: keyboard type, every key entry with
// its behaviors, and all three remapping tables. Source names and
// overlay bookkeeping are not compared, so a map whose overlay has been
// cleared compares equal to a fresh parse of its source.
func (m *Map) Equal(other *Map) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if m.keyboardType != other.keyboardType {
		return false
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for code, key := range m.keys {
		otherKey := other.keys[code]
		if otherKey == nil || !key.equal(otherKey) {
			return false
		}
	}
	return equalCodeMaps(m.keysByScanCode, other.keysByScanCode) &&
		equalCodeMaps(m.keysByUsageCode, other.keysByUsageCode) &&
		equalCodeMaps(m.keyRemap, other.keyRemap)
}

func (k *Key) equal(other *Key) bool {
	if k.Label != other.Label || k.Number != other.Number {
		return false
	}
	if len(k.Behaviors) != len(other.Behaviors) {
		return false
	}
	for i := range k.Behaviors {
		if k.Behaviors[i] != other.Behaviors[i] {
			return false
		}
	}
	return true
}

func equalCodeMaps[K comparable, V comparable](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
