// Package analysis runs parameter scans over the bioavailability model.
//
// A [Sweep] varies one input of a base chemical and evaluates each variant
// independently, in parallel:
//
//	sw := analysis.Sweep{Param: analysis.Liver, Values: analysis.Logspace(0.1, 10, 9)}
//	points, err := sw.Run(ctx, chem, phys, opts, nil)
//
// Clearances and permeability are scaled by the swept value; logKow is
// replaced by it.
package analysis
