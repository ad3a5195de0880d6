// Package mapping transforms arbitrary input documents into CRM records.
//
// A mapping table is an ordered list of [domain.FieldMapping] rows. Each row
// reads a dot-delimited source path from the input document with [Get] and
// writes the value to a target key, either through a registered [Transform]
// or through [Set], which builds nested objects for dotted target keys.
//
// Reads fail soft: a missing or unreachable path is simply skipped.
// Writes repair: intermediate values that are not objects are replaced.
package mapping
