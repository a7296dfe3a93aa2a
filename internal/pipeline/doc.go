// Package pipeline runs the comparison of many JSON files against one
// reference schema.
//
// Each file is processed by a Pipeline of Steps operating on a FileJob:
// the file is read, its field paths are extracted and the fields are
// classified. The decoded document is dropped as soon as extraction is
// done, so only field sets and results stay in memory.
//
// A BatchProcessor feeds files through fresh pipelines in bounded chunks,
// with a concurrency limit inside each chunk managed by errgroup. The
// Engine ties configuration, steps and batch processing together.
package pipeline
