// Package domain contains the core entities of the vocabulary trainer:
// word catalog entries, user-created custom words, learning words with their
// spaced-repetition state, and the validation rules that keep them coherent.
//
// Entities in this package carry no persistence or transport concerns; they
// are created, validated, and mutated by the service layer and serialized by
// the store and API layers.
package domain
