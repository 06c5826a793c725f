// Package thermo holds the species data model shared by the reference
// solver, the NASA fitter and the thermdat writer.
//
// A Species carries a Model, which is a tagged variant: the Kind selects an
// evaluator from a table and the Params hold the raw model parameters taken
// from the input record. Evaluating a Model yields a Sampler, a pure function
// from temperature to dimensionless Cp/R, H/RT and S/R.
package thermo
