// Package controller binds the mask formatter to a single editable field.
//
// A Controller owns the mask state of one field and reacts to its events:
// edits and focus changes reformat the text, while clicks, selections, and
// a configurable set of keys are kept from moving the caret into (or
// deleting) the dialing prefix.
//
// Event flow:
//
//	front end ──Event──▶ Controller.Handle ──▶ Outcome{PreventDefault, Caret}
//	                          │
//	                          ├─ mask.Format (input, focus, blur)
//	                          └─ field.Field / field.Caret writes
//
// Front ends report key presses before applying them and honor
// Outcome.PreventDefault; edits are reported afterwards as EventInput.
//
// Fields are never discovered by the controller. The application binds
// each one explicitly, either with New or through a Registry.
package controller
