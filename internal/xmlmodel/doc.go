// Package xmlmodel loads models from the XML documents produced by the
// modelling tool's PSM export. Attributes carrying JSON lists are decoded
// into typed records during load.
package xmlmodel
