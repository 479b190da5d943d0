// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// entity with ToDomain and FromDomain.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - identity.go: tenants, tenant business type links, users
//   - catalog.go: business types, product and service templates
//   - pricing.go: pricing rules
//
// Schemaless documents are stored as JSON text and decoded by the mappers.
// Tenant settings and template attributes use jsonb. Rule conditions and
// calculations use json, which keeps object keys in written order; seasonal
// schedules depend on that order.
package models
