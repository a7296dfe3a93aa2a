// Package extract walks decoded JSON documents and produces the set of
// field paths they contain.
//
// Paths are built from object keys only. Array indices never appear: every
// element of an array is walked with the array's own path as prefix, so all
// elements collapse onto one logical path. Fields found inside an object
// that is an array element are recorded twice, once with the full path
// (orders.sku) and once as the bare leaf (sku), because reference schemas
// often list nested array fields without their container name.
//
// A top-level array is treated as a list of independent records. Each record
// is extracted on its own and the results are unioned.
package extract
