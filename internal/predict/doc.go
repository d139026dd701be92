// Package predict consults the weekly rotation schedule.
//
// The schedule (predictions.yaml) maps week seeds in YYYYWW form to
// the game selected for that week. The catalog build uses it two ways:
//
//   - Overlay: a game scheduled for a past or current week is forced
//     visible regardless of its own hide setting, and past-week games
//     get their added date overridden with the week's Monday.
//   - Current game: the entry scheduled for the current week feeds the
//     current_game.txt artifact.
//
// The schedule is loaded once per build; a missing or malformed file
// yields an empty schedule, never a failed build.
package predict
