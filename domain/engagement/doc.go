// Package engagement holds the filter-and-aggregation pipeline over user
// engagement records.
//
// A Dataset is built once and never mutated. Apply narrows it to a View for
// one FilterCriteria value, and the aggregate functions derive chart-ready
// tables from that View. Every grouped output is ordered lexically by key, so
// ties resolve to the lexically smallest key.
package engagement
