// Package seed loads static game content (types, type chart, species and
// achievements) from YAML and writes it into a game store.
package seed
