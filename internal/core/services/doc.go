// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// GeneratorService turns a manifest into planned documentation units,
// renders them through the splice package and hands the results to the
// output, record and HTML renderer ports.
package services
