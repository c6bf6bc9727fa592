// Package checker runs ingredient checks end to end.
//
// Pipeline is the stateless path: text or an image goes in, a Report with
// the extracted codes and the verdict comes out. Session adds the
// submission lifecycle on top of it for interactive use:
//
//	Editing --Submit--> Vegan | NotVegan --Reset--> Editing
//	Editing --UploadImage--> Processing --done--> Editing
//
// Every error a check can produce is recovered at the boundary of that
// check. UserMessage turns it into the sentence shown to the user, and the
// session stays usable afterwards.
package checker
