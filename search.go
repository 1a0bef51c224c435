// Regex search over live values.
package strata

import "regexp"

// Find returns the sorted keys whose current value matches pattern.
// Only live records are visited: the index drives the scan, so stale
// and removed data never produce matches.
func (s *Store) Find(pattern string) ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrInvalidPattern
	}

	var matches []string
	for _, key := range s.Keys() {
		value, ok, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		if ok && re.MatchString(value) {
			matches = append(matches, key)
		}
	}
	return matches, nil
}
