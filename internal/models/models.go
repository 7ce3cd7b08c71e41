package models

// PreferenceStore persists JSON settings under string keys, such as the synth volume.
type PreferenceStore interface {
	Get(key string, v any) (bool, error) // Get decodes the value at key into v and reports whether it existed
	Set(key string, v any) error         // Set stores v at key, replacing any previous value
}
