// Package service contains the application services orchestrating the
// domain: the learning service owning the user's learning and custom word
// collections (with write-through persistence to the storage collaborator),
// and the preference service for UI settings. The review session engine
// lives in the nested review package.
package service
