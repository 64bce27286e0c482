// Package field provides fluent builders for describing class fields to the
// pattern generator.
//
// Field names follow the source class verbatim; generated setter names are
// derived from them (PascalCase), while builder state keeps the declared
// spelling:
//
//	field.String("providerName")  // state: providerName, setter: ProviderName
//	field.Int("amount")           // state: amount, setter: Amount
//
// # Field Types
//
// The package supports the common scalar types plus explicit spellings:
//
//	field.String("name")
//	field.Int("count")
//	field.Int64("total")
//	field.Float64("price")
//	field.Bool("isStocked")
//	field.Time("createdAt")
//	field.UUID("id")
//	field.Bytes("payload")
//	field.Strings("tags")
//
//	// Named, pointer and slice types
//	field.Other("provider", field.NamedType("Provider"))
//	field.Other("labels", field.NamedType("[]Label"))
//	field.Other("amount", field.QualType("github.com/shopspring/decimal", "Decimal"))
//
// # Markers
//
// Rule markers attach through the builder:
//
//	field.String("name").Ignore()             // never part of the companion
//	field.Time("createdAt").Immutable()       // no setter, no builder state
//	field.Int("amount").Alias("available")    // narration name only
//
// # Defaults
//
// Default literals are Go source text emitted verbatim into the generated
// factory:
//
//	field.String("status").Default(`"pending"`)
//	field.Int("amount").Default("1")
package field
