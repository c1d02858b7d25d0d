// Package hclmodel loads models written in HCL. Elements are labelled
// blocks nested under a single system block; see testdata/smart_farm.hcl
// for a complete example.
package hclmodel
