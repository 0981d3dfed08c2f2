// Package pbtk computes oral bioavailability (Fbio) with a gut-liver
// physiologically based toxicokinetic model.
//
// The model tracks three sequential small-intestine lumen segments, the gut
// wall, the liver and a lumped rest-of-body compartment, plus five
// cumulative transfer amounts that are only read at the end of a run:
//
//   - [Model]: the 11-state right-hand side, a [dynamo.System]
//   - [Extract]: Fbio from the final cumulative transfers
//   - [Evaluate]: derive parameters, integrate, extract
//   - [Fbio]: scalar convenience entry point
//
// # Example
//
//	chem := pbtk.Chemical{Name: "DEHP", LogKow: 7.43, Assay: ivive.Microsome, Papp: 2.1e-6}
//	out, err := pbtk.Evaluate(ctx, chem, physiology.Default(), pbtk.DefaultOptions())
//	fmt.Println(out.Fbio)
package pbtk
