// Package fieldpath provides hierarchical path addressing for form value
// trees and field registries.
//
// Paths use dot notation with numeric segments for array elements:
//
//	user.name        - the "name" property of "user"
//	items.0.price    - the "price" of the first element of "items"
//
// The rendered string form is valid tidwall/gjson path syntax, so a Path
// can address a JSON document directly.
//
// Patterns support wildcards for matching groups of paths:
//
//	items.*.price    - price of every element (single segment)
//	user.**          - everything under user (zero or more segments)
package fieldpath
