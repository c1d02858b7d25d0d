// Package output writes generated component directories. Each directory is
// staged next to its destination and swapped in with a rename, so readers
// never observe a half-written component.
package output
