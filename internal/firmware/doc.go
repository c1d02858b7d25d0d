// Package firmware assembles the files of one component's firmware sketch:
// the main sketch, the connectivity helpers it includes, and the secrets
// header holding network credentials.
//
// Assembly is pure: a Unit holds every file in memory and nothing touches
// the filesystem until the output package writes it.
package firmware
