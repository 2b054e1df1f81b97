// Package domain contains the core business entities of the car sales
// system (autos, ventas, personas, paises and users), their field rules and
// the sale total consistency check. It is independent of any storage or
// delivery mechanism.
package domain
