// Package structured stores per-scope structured content: one logical
// content blob per scope name, with free-form metadata and an update
// timestamp. The pipeline queries it once per requested scope; the seed
// command writes to it.
package structured
