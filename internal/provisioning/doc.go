// Package provisioning runs an ordered list of phases against a workload
// container.
//
// Phases execute strictly in order; the first failure stops the pipeline and
// is returned wrapped with the phase name. Nothing is retried or rolled back.
// Progress is reported through an [Observer] and, optionally, recorded in
// [Metrics].
package provisioning
