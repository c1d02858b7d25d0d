// Package naming turns model names into firmware identifiers and maps model
// type names onto the native types of the target toolchain. It also renders
// single variable statements (declaration, initialization, assignment) that
// the emitters compose into larger fragments.
package naming
