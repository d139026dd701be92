// Package catalog builds the game catalog document.
//
// # Builder
//
// Builder turns one manifest entry (or one external game directory)
// into a normalized catalog entry through a fixed sequence: metadata
// defaults, prediction overlay, recency evaluation, cover and
// save-state resolution.
//
// # Assembler
//
// The Assembler fans the per-entry work out over a bounded worker
// pool (or runs it sequentially, which must produce the same result),
// collects entries and skips, validates the final document and
// publishes the artifacts:
//
//	asm := catalog.NewAssembler(settings, time.Now())
//	result, err := asm.Assemble(ctx, entries)
//	if err != nil {
//	    // fatal: empty or invalid catalog
//	}
//	err = asm.Publish(result)
//
// Per-entry failures degrade to skips with a diagnostic; only an empty
// or unserializable final document fails the build.
package catalog
