// Package announce generates the weekly game announcement message.
//
// The generator reads the scheduled game's metadata, builds a French
// prompt and asks a chat completion API (OpenAI or Anthropic) for a
// short announcement, clamped to three sentences. The result can be
// written back into the game's metadata.yaml without disturbing the
// rest of the file.
package announce
