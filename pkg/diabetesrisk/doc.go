// Package diabetesrisk classifies a patient's diabetes risk from the trigger
// terms found in practitioner notes, the patient's age and sex.
//
// The package is pure: CountEvidence and Classify have no side effects, and
// Evaluator only reads from the PatientSource and NoteSource it is given.
// Services supply their own adapters for those two collaborators.
package diabetesrisk
